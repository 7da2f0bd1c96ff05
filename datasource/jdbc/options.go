package jdbc

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlDriverParams are the dsn parameters of go-sql-driver/mysql. Any other key
// would be sent to the server as a session variable.
var mysqlDriverParams = map[string]struct{}{
	"allowAllFiles":            {},
	"allowCleartextPasswords":  {},
	"allowFallbackToPlaintext": {},
	"allowNativePasswords":     {},
	"allowOldPasswords":        {},
	"charset":                  {},
	"checkConnLiveness":        {},
	"clientFoundRows":          {},
	"collation":                {},
	"columnsWithAlias":         {},
	"interpolateParams":        {},
	"loc":                      {},
	"maxAllowedPacket":         {},
	"multiStatements":          {},
	"parseTime":                {},
	"readTimeout":              {},
	"rejectReadOnly":           {},
	"serverPubKey":             {},
	"timeout":                  {},
	"tls":                      {},
	"writeTimeout":             {},
}

// postgresDriverParams are the connection parameters lib/pq and the server accept.
var postgresDriverParams = map[string]struct{}{
	"sslmode":                   {},
	"sslcert":                   {},
	"sslkey":                    {},
	"sslrootcert":               {},
	"sslinline":                 {},
	"connect_timeout":           {},
	"application_name":          {},
	"fallback_application_name": {},
	"search_path":               {},
	"options":                   {},
	"timezone":                  {},
	"client_encoding":           {},
	"datestyle":                 {},
}

// mysqlConfig builds a driver config from JDBC and driver arguments.
func mysqlConfig(args map[string]string) (*mysql.Config, error) {
	params := url.Values{}
	for k, v := range args {
		if _, ok := mysqlDriverParams[k]; ok {
			params.Set(k, v)
		}
	}

	if v, ok := args["useSSL"]; ok && params.Get("tls") == "" {
		switch {
		case !isTrue(v):
			params.Set("tls", "false")
		case args["verifyServerCertificate"] != "" && !isTrue(args["verifyServerCertificate"]):
			params.Set("tls", "skip-verify")
		default:
			params.Set("tls", "true")
		}
	}
	if v, ok := millis(args["connectTimeout"]); ok && params.Get("timeout") == "" {
		params.Set("timeout", v.String())
	}
	if v, ok := millis(args["socketTimeout"]); ok {
		if params.Get("readTimeout") == "" {
			params.Set("readTimeout", v.String())
		}
		if params.Get("writeTimeout") == "" {
			params.Set("writeTimeout", v.String())
		}
	}
	if v := args["serverTimezone"]; v != "" && params.Get("loc") == "" {
		params.Set("loc", v)
	}
	if v := args["characterEncoding"]; v != "" && params.Get("charset") == "" {
		if strings.EqualFold(v, "UTF-8") || strings.EqualFold(v, "utf8") {
			v = "utf8mb4"
		}
		params.Set("charset", v)
	}

	return mysql.ParseDSN("/?" + params.Encode())
}

// postgresParams keeps the driver parameters and translates the pgjdbc options.
func postgresParams(args map[string]string) map[string]string {
	params := make(map[string]string)
	for k, v := range args {
		if _, ok := postgresDriverParams[k]; ok {
			params[k] = v
		}
	}

	if v, ok := args["ssl"]; ok {
		if _, set := params["sslmode"]; !set {
			params["sslmode"] = "disable"
			if isTrue(v) {
				params["sslmode"] = "require"
			}
		}
	}
	for _, key := range []string{"connectTimeout", "loginTimeout"} {
		if v := args[key]; v != "" {
			if _, set := params["connect_timeout"]; !set {
				params["connect_timeout"] = v
			}
		}
	}
	if v := args["ApplicationName"]; v != "" {
		if _, set := params["application_name"]; !set {
			params["application_name"] = v
		}
	}
	if v := args["currentSchema"]; v != "" {
		if _, set := params["search_path"]; !set {
			params["search_path"] = v
		}
	}

	if _, ok := params["sslmode"]; !ok {
		params["sslmode"] = "disable"
	}
	if _, ok := params["connect_timeout"]; !ok {
		params["connect_timeout"] = "10"
	}
	return params
}

func isTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// millis parses a JDBC timeout in milliseconds, 0 means none.
func millis(v string) (time.Duration, bool) {
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
