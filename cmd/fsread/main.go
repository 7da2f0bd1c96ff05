package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/logicalclocks/featurestore-go-sdk/config"
	"github.com/logicalclocks/featurestore-go-sdk/dao"
	"github.com/logicalclocks/featurestore-go-sdk/domain"
	"github.com/logicalclocks/featurestore-go-sdk/featurestore"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	configPath       = flag.String("config", "", "path of the configuration file")
	name             = flag.String("name", "", "feature group name")
	version          = flag.Int("version", 1, "feature group version, 0 reads the latest version")
	featurestoreName = flag.String("featurestore", "", "featurestore name, defaults to the project featurestore")
	online           = flag.String("online", "", "read the online store: true or false, defaults to the configuration")
	jdbcArgs         = flag.String("jdbc-args", "", "jdbc arguments of on-demand feature groups, k1=v1,k2=v2")
	filter           = flag.String("filter", "", "row filter expression, e.g. \"clicks > 10\"")
	timeout          = flag.Duration("timeout", 5*time.Minute, "read timeout")
)

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	if *name == "" {
		log.Fatal().Msg("-name is required")
	}

	client, err := featurestore.NewFeatureStoreClientFromConfig(cfg,
		featurestore.WithLoopData(false),
		featurestore.WithLogger(featurestore.NewZerologLogger(log.Logger, zerolog.DebugLevel)),
		featurestore.WithErrorLogger(featurestore.NewZerologLogger(log.Logger, zerolog.ErrorLevel)))
	if err != nil {
		log.Fatal().Err(err).Msg("create featurestore client failed")
	}
	defer client.Close()

	op := client.ReadFeatureGroup(*name).
		SetFeaturestore(*featurestoreName).
		SetVersion(*version)
	if *jdbcArgs != "" {
		op.SetJdbcArguments(domain.ParseArguments(*jdbcArgs))
	}
	switch *online {
	case "true":
		op.SetOnline(true)
	case "false":
		op.SetOnline(false)
	case "":
	default:
		log.Fatal().Str("online", *online).Msg("-online must be true or false")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var dataset dao.Dataset
	dataset, err = op.Read(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("featuregroup", *name).Msg("read featuregroup failed")
	}
	if *filter != "" {
		if dataset, err = dataset.Where(*filter); err != nil {
			log.Fatal().Err(err).Str("filter", *filter).Msg("invalid filter")
		}
	}

	rows, err := dataset.Collect(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("featuregroup", *name).Msg("collect featuregroup failed")
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			log.Fatal().Err(err).Msg("write row failed")
		}
	}
	log.Info().Str("featuregroup", *name).Int("rows", len(rows)).Str("jobGroup", client.JobGroup().Description).Msg("read featuregroup")
}
