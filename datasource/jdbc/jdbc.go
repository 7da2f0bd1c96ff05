package jdbc

import (
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/logicalclocks/featurestore-go-sdk/constants"
	"github.com/logicalclocks/featurestore-go-sdk/datasource/hologres"
)

const (
	Scheme_MySQL      = "mysql"
	Scheme_PostgreSQL = "postgresql"
	Scheme_Hologres   = "hologres"
)

// ConnectionURL is a JDBC connection string translated for database/sql.
type ConnectionURL struct {
	Scheme     string
	DriverName string
	DSN        string
}

// BuildURL translates a JDBC connection string ("jdbc:mysql://host:3306/db") into a
// driver name and dsn. Connector arguments are applied first, extra arguments override them.
// The keys "user" and "password" become credentials. JDBC options are translated to the
// parameters of the go driver, keys the driver does not understand are dropped.
func BuildURL(connectionString string, connectorArgs, extraArgs map[string]string) (ConnectionURL, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(connectionString), "jdbc:")
	u, err := url.Parse(raw)
	if err != nil {
		return ConnectionURL{}, fmt.Errorf("invalid jdbc connection string:%s, err=%w", connectionString, err)
	}
	if u.Host == "" {
		return ConnectionURL{}, fmt.Errorf("invalid jdbc connection string:%s, missing host", connectionString)
	}

	args := make(map[string]string)
	for k, v := range u.Query() {
		if len(v) > 0 {
			args[k] = v[0]
		}
	}
	for k, v := range connectorArgs {
		args[k] = v
	}
	for k, v := range extraArgs {
		args[k] = v
	}

	user := args["user"]
	if user == "" {
		user = args["username"]
	}
	password := args["password"]
	delete(args, "user")
	delete(args, "username")
	delete(args, "password")

	database := strings.TrimPrefix(u.Path, "/")

	switch u.Scheme {
	case Scheme_MySQL:
		cfg, err := mysqlConfig(args)
		if err != nil {
			return ConnectionURL{}, fmt.Errorf("invalid jdbc connection string:%s, err=%w", connectionString, err)
		}
		cfg.Net = "tcp"
		cfg.Addr = u.Host
		cfg.DBName = database
		cfg.User = user
		cfg.Passwd = password
		return ConnectionURL{Scheme: u.Scheme, DriverName: constants.Datasource_Type_MySQL, DSN: cfg.FormatDSN()}, nil
	case Scheme_PostgreSQL, Scheme_Hologres:
		params := postgresParams(args)
		dsn := url.URL{
			Scheme:   "postgres",
			Host:     u.Host,
			Path:     "/" + database,
			RawQuery: encodeArgs(params),
		}
		if user != "" {
			dsn.User = url.UserPassword(user, password)
		}
		driverName := constants.Datasource_Type_Postgres
		if u.Scheme == Scheme_Hologres {
			driverName = hologres.DriverName
		}
		return ConnectionURL{Scheme: u.Scheme, DriverName: driverName, DSN: dsn.String()}, nil
	default:
		return ConnectionURL{}, fmt.Errorf("not support jdbc scheme:%s", u.Scheme)
	}
}

func encodeArgs(args map[string]string) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, url.QueryEscape(k)+"="+url.QueryEscape(args[k]))
	}
	return strings.Join(values, "&")
}

// RegisterCustomDialects registers the database/sql drivers that are not
// registered by their packages' init. It is idempotent.
func RegisterCustomDialects() {
	hologres.RegisterDriver()
}

var dbInstances sync.Map

// GetDB returns the pool of a connection url, opening it on first use.
func GetDB(u ConnectionURL) (*sql.DB, error) {
	if value, ok := dbInstances.Load(u.DSN); ok {
		return value.(*sql.DB), nil
	}

	db, err := sql.Open(u.DriverName, u.DSN)
	if err != nil {
		return nil, fmt.Errorf("open jdbc connection error, driver:%s, err=%w", u.DriverName, err)
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(20)

	value, loaded := dbInstances.LoadOrStore(u.DSN, db)
	if loaded {
		db.Close()
	}
	return value.(*sql.DB), nil
}

// CloseAll closes every pool opened by GetDB.
func CloseAll() {
	dbInstances.Range(func(key, value interface{}) bool {
		value.(*sql.DB).Close()
		dbInstances.Delete(key)
		return true
	})
}
