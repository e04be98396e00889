package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"orgnet/internal/certificate"
	certCache "orgnet/internal/certificate/cache"
	certHandler "orgnet/internal/certificate/handler"
	"orgnet/internal/events"
	eventsHandler "orgnet/internal/events/handler"
	"orgnet/internal/events/kafka"
	eventsPostgres "orgnet/internal/events/store/postgres"
	httpapi "orgnet/internal/http"
	jwttoken "orgnet/internal/jwt_token"
	"orgnet/internal/leave"
	leaveHandler "orgnet/internal/leave/handler"
	"orgnet/internal/notice"
	noticeHandler "orgnet/internal/notice/handler"
	"orgnet/internal/payment"
	paymentHandler "orgnet/internal/payment/handler"
	"orgnet/internal/platform/config"
	"orgnet/internal/platform/httpserver"
	"orgnet/internal/platform/logger"
	"orgnet/internal/platform/metrics"
	platformRedis "orgnet/internal/platform/redis"
	"orgnet/internal/task"
	taskHandler "orgnet/internal/task/handler"
)

const eventInboxBuffer = 256

// main wires dependencies and owns the process lifecycle. Business rules
// live in the registry services; optional integrations (postgres and kafka
// event mirrors, redis verification cache) attach only when configured.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	publisher := events.NewPublisher(events.NewInMemoryStore(),
		events.WithLogger(log),
		events.WithDropCounter(m.IncEventDropped),
	)

	var sinks []events.Sink
	if cfg.EventMirrorPostgresURL != "" {
		pgStore, err := eventsPostgres.Open(cfg.EventMirrorPostgresURL)
		if err != nil {
			log.Error("postgres event mirror unavailable", "error", err)
			os.Exit(1)
		}
		defer pgStore.Close()
		sinks = append(sinks, pgStore)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := kafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka event sink unavailable", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	}

	redisClient, err := platformRedis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	var verifyCache certCache.VerificationCache
	if redisClient != nil {
		defer redisClient.Close()
		verifyCache = certCache.NewRedisCache(redisClient.Client, cfg.VerifyCacheTTL)
	} else {
		verifyCache = certCache.NewInMemoryCache(cfg.VerifyCacheTTL)
	}

	jwtService := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	validator := jwttoken.NewMiddlewareAdapter(jwtService)

	certService := certificate.NewService(certificate.NewInMemoryStore(), publisher,
		certificate.WithLogger(log),
		certificate.WithMetrics(m),
		certificate.WithVerificationCache(verifyCache),
	)
	taskService := task.NewService(task.NewInMemoryStore(), publisher,
		task.WithLogger(log),
		task.WithMetrics(m),
	)
	leaveService := leave.NewService(leave.NewInMemoryStore(), leave.NewInMemoryHolidayStore(), leave.NewInMemoryAttendanceStore(), publisher,
		leave.WithLogger(log),
		leave.WithMetrics(m),
	)
	noticeService := notice.NewService(notice.NewInMemoryStore(), publisher,
		notice.WithLogger(log),
		notice.WithMetrics(m),
	)
	paymentService := payment.NewService(payment.NewInMemoryStore(), payment.NewInMemoryTreasury(), publisher,
		payment.WithLogger(log),
		payment.WithMetrics(m),
	)

	router := httpapi.NewRouter(log,
		certHandler.New(certService, log, validator),
		taskHandler.New(taskService, log, validator),
		leaveHandler.New(leaveService, log, validator),
		noticeHandler.New(noticeService, log, validator),
		paymentHandler.New(paymentService, log, validator),
		eventsHandler.New(publisher, log),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)

	if len(sinks) > 0 {
		worker := events.NewWorker(publisher.Subscribe(eventInboxBuffer), sinks, log, m.IncMirrorFailure)
		g.Go(func() error { return worker.Run(ctx) })
	}

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
