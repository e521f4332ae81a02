package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"googlemaps.github.io/maps"

	"github.com/medi-route/triage-api/api"
	"github.com/medi-route/triage-api/external/emergency"
	"github.com/medi-route/triage-api/external/predictor"
	"github.com/medi-route/triage-api/external/tmap"
	"github.com/medi-route/triage-api/facility"
	"github.com/medi-route/triage-api/geo"
	"github.com/medi-route/triage-api/logmodule"
	"github.com/medi-route/triage-api/route"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/share/upstream"
	"github.com/medi-route/triage-api/store"
	"github.com/medi-route/triage-api/triage"
	"github.com/medi-route/triage-api/utils"
)

var (
	server      *api.Server
	mongoStore  store.MongoStore
	redisClient *redis.Client
	metrics     io.Closer
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("triage")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func upstreamConfig() upstream.Config {
	return upstream.Config{
		Timeout:     viper.GetDuration("upstream.timeout"),
		Attempts:    viper.GetInt("upstream.attempts"),
		Backoff:     viper.GetDuration("upstream.backoff"),
		MaxFailures: viper.GetInt("upstream.breaker.max_failures"),
		OpenTimeout: viper.GetDuration("upstream.breaker.open_timeout"),
	}
}

// newDistanceCache uses redis when it is configured, so that replicas
// share measured distances.
func newDistanceCache() facility.Cache {
	ttl := viper.GetDuration("facility.cache_ttl")

	conn := viper.GetString("redis.conn")
	if conn == "" {
		return facility.NewMemoryCache(ttl)
	}

	opts, err := redis.ParseURL(conn)
	if err != nil {
		log.Panicf("parse redis url with error: %s", err)
	}
	redisClient = redis.NewClient(opts)
	log.WithField("prefix", "init").Info("Initialized redis distance cache")

	return facility.NewRedisCache(redisClient, ttl)
}

func newGeocoder(tmapClient tmap.Tmap) geo.Geocoder {
	geocoders := []geo.Geocoder{geo.NewTmapGeocoder(tmapClient)}

	if key := viper.GetString("googlemaps.apikey"); key != "" {
		mapsClient, err := maps.NewClient(maps.WithAPIKey(key))
		if err != nil {
			log.Panicf("create google maps client with error: %s", err)
		}
		geocoders = append(geocoders, geo.NewGoogleGeocoder(mapsClient))
	}

	return geo.NewMultipleGeocoder(geocoders...)
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown triage api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if mongoStore != nil {
			log.Info("Shutting down db store")
			mongoStore.Close()
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Error(err)
			}
		}

		if metrics != nil {
			if err := metrics.Close(); err != nil {
				log.Error(err)
			}
		}

		sentry.Flush(5 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	utils.InitI18NBundle()

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	jwtSecret := viper.GetString("jwt.secret")
	if jwtSecret == "" {
		log.Panic("empty jwt secret")
	}

	// Metrics
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "triage",
		Reporter: logmodule.NewTallyReporter(),
	}, viper.GetDuration("metrics.interval"))
	metrics = closer

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}

	database := viper.GetString("mongo.database")
	schema.NewMongoDBIndexer(mongoClient, database).IndexAll()
	mongoStore = store.NewMongoStore(mongoClient, database)
	log.WithField("prefix", "init").Info("Initialized mongo store")

	// External services
	caller := upstream.NewCaller(upstreamConfig(), scope)

	predictorClient := predictor.New(
		viper.GetString("predictor.url"),
		viper.GetString("predictor.token"),
		httpClient,
		caller)

	tmapClient := tmap.New(
		viper.GetString("tmap.url"),
		viper.GetString("tmap.appkey"),
		httpClient,
		caller)

	var neighbors emergency.Neighbors
	if file := viper.GetString("emergency.neighbors_file"); file != "" {
		neighbors, err = emergency.LoadNeighbors(file)
		if err != nil {
			log.Panicf("load emergency neighbors with error: %s", err)
		}
	}
	emergencyClient := emergency.New(
		viper.GetString("emergency.url"),
		viper.GetString("emergency.apikey"),
		neighbors,
		httpClient,
		caller)

	// Triage pipeline
	estimator := route.NewEstimator(tmapClient, predictorClient)
	locator := facility.NewLocator(
		newGeocoder(tmapClient),
		tmapClient,
		estimator,
		newDistanceCache(),
		facility.Config{
			RadiusKm:         viper.GetFloat64("facility.radius_km"),
			FallbackRadiusKm: viper.GetFloat64("facility.fallback_radius_km"),
			Count:            viper.GetInt("facility.count"),
			FallbackCount:    viper.GetInt("facility.fallback_count"),
			Exclude:          viper.GetStringSlice("facility.exclude"),
			Workers:          viper.GetInt("facility.workers"),
		})
	orchestrator := triage.NewOrchestrator(
		mongoStore,
		predictorClient,
		predictorClient,
		locator,
		estimator,
		viper.GetDuration("triage.timeout"))
	log.WithField("prefix", "init").Info("Initialized triage pipeline")

	// Init http server
	server = api.NewServer(
		mongoStore,
		orchestrator,
		emergencyClient,
		caller,
		[]byte(jwtSecret))
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
