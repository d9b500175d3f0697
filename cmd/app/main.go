package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/logging" // import this for side effects if this isn't needed directly anymore
	"github.com/beautifulplanet/safetyserv/storage"
)

func main() {
	var err error
	var db storage.PersistentStorage

	instanceConfig, err := config.NewInstanceConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Start pprof early if configured so startup can be debugged (if needed)
	if instanceConfig.PprofBind != "" {
		go func() {
			// pprof binds itself to the default HTTP server, so we just have to start that server.
			log.Println("Starting pprof server on", instanceConfig.PprofBind)
			log.Fatal(http.ListenAndServe(instanceConfig.PprofBind, nil))
		}()
	}

	if db, err = setupStorage(instanceConfig); err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	engine, err := setupEngine(instanceConfig)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Signature revision:", engine.Store().Revision())

	pool, err := setupQueue(instanceConfig, engine, db)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Release()

	api, err := setupApi(instanceConfig, db, engine, pool)
	if err != nil {
		log.Fatal(err) // "should never happen"
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	appMux := http.NewServeMux()
	if err = api.BindTo(appMux); err != nil {
		log.Fatal(err)
	}

	metricsServer := &http.Server{Addr: instanceConfig.MetricsBind, Handler: metricsMux}
	appServer := &http.Server{Addr: instanceConfig.HttpBind, Handler: appMux}

	var wg sync.WaitGroup
	stopping := false
	startServer := func(server *http.Server) {
		err := server.ListenAndServe()
		if err != nil && (!stopping && !errors.Is(err, http.ErrServerClosed)) {
			log.Fatal(err)
		}
	}
	stopServer := func(server *http.Server, ctx context.Context) {
		defer wg.Done()
		err := server.Shutdown(ctx)
		if err != nil {
			log.Fatal(err)
		}
	}
	wg.Add(2) // 1 for each server
	go startServer(metricsServer)
	go startServer(appServer)

	// Schedule tasks now that we're mostly started up
	scheduler, err := gocron.NewScheduler(gocron.WithLogger(&logging.CronLogger{}))
	if err != nil {
		log.Fatal(err)
	}
	scheduler.Start() // start immediately so we can force jobs to run immediately too
	err = setupScheduler(scheduler, db, instanceConfig)
	if err != nil {
		log.Fatal(err)
	}

	// Wait for a stop signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer close(stop)
	<-stop
	stopping = true

	log.Println("Stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
	defer cancel()
	if err = scheduler.StopJobs(); err != nil {
		log.Printf("Failed to stop scheduler: %v", err)
	}
	go stopServer(metricsServer, ctx)
	go stopServer(appServer, ctx)
	wg.Wait()
}
