package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/forumkit/forumcore/pkg/config"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/fatal"
	"github.com/forumkit/forumcore/pkg/log"
	"github.com/forumkit/forumcore/pkg/metrics"
	"github.com/forumkit/forumcore/pkg/persist"
	"github.com/forumkit/forumcore/pkg/pipeline"
	"github.com/forumkit/forumcore/pkg/replay"
	"github.com/forumkit/forumcore/pkg/repository"
	"github.com/forumkit/forumcore/pkg/searchfeed"
	"github.com/forumkit/forumcore/pkg/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Replay the durable log and serve repository operations",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("metrics-addr", ":9090", "Address to serve /metrics, /health, /ready and /live on")
	serveCmd.Flags().Bool("search-feed", true, "Queue entity changes for an external search indexer")
}

func runServe(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	configPath, _ := cmd.Flags().GetString("config")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	searchFeedEnabled, _ := cmd.Flags().GetBool("search-feed")

	snap, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfgStore := config.NewStore(snap)

	s := store.New()
	s.MaxVoteHistoryLength = snap.User.MaxVoteHistoryLength

	log.WithComponent("serve").Info().Str("data_dir", dataDir).Msg("replaying durable log")
	replayStart := time.Now()
	repo := repository.New(s, cfgStore, nil, nil)
	replay.Run(dataDir, true, repository.NewDirectWriter(repo))
	metrics.ReplayDuration.Observe(time.Since(replayStart).Seconds())

	appender, err := persist.NewAppender(dataDir, snap.Persistence.CreateNewOutputFileEvery())
	if err != nil {
		fatal.Abort("serve", "failed to open appender", err, map[string]string{"data_dir": dataDir})
	}
	defer appender.Close()

	pipe := pipeline.New(appender, pipeline.DefaultCapacity)
	defer pipe.Close()

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	repo.Pipe = pipe
	repo.Broker = broker

	if searchFeedEnabled {
		outbox, err := searchfeed.NewOutbox(dataDir)
		if err != nil {
			fatal.Abort("serve", "failed to open search feed outbox", err, map[string]string{"data_dir": dataDir})
		}
		defer outbox.Close()
		feed := searchfeed.NewFeed(outbox, broker)
		go feed.Run()
		defer feed.Close()
	}

	collector := metrics.NewCollector(s, pipe)
	collector.Start()
	defer collector.Stop()

	// "store" and "pipeline" are registered and kept current by the
	// collector's tick (collectEntityMetrics/collectPipelineMetrics); "api"
	// has no periodic signal of its own, so it's set once the mux is about
	// to start serving.
	metrics.RegisterComponent("api", true, "")

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/health", metrics.HealthHandler())
	mux.Handle("/ready", metrics.ReadyHandler())
	mux.Handle("/live", metrics.LivenessHandler())

	srv := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		log.WithComponent("serve").Info().Str("addr", metricsAddr).Msg("serving metrics and health endpoints")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithComponent("serve").Error().Err(err).Msg("metrics server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.WithComponent("serve").Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
