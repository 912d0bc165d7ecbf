package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/statera-app/statera-backend/internal/clients/redis"
	"github.com/statera-app/statera-backend/internal/data/db"
	"github.com/statera-app/statera-backend/internal/data/repos"
	"github.com/statera-app/statera-backend/internal/data/schema"
	"github.com/statera-app/statera-backend/internal/http/handlers"
	"github.com/statera-app/statera-backend/internal/http/middleware"
	"github.com/statera-app/statera-backend/internal/platform/envutil"
	"github.com/statera-app/statera-backend/internal/platform/logger"
	"github.com/statera-app/statera-backend/internal/platform/sendgrid"
	"github.com/statera-app/statera-backend/internal/server"
	"github.com/statera-app/statera-backend/internal/services"
)

func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	gdb := postgresService.DB()

	// Repos
	userRepo := repos.NewUserRepo(gdb, log)
	orgRepo := repos.NewOrganizationRepo(gdb, log)
	memberRepo := repos.NewMemberRepo(gdb, log)
	leadRepo := repos.NewLeadRepo(gdb, log)
	planRepo := repos.NewPlanRepo(gdb, log)
	subRepo := repos.NewSubscriptionRepo(gdb, log)
	invoiceRepo := repos.NewInvoiceRepo(gdb, log)
	annRepo := repos.NewAnnouncementRepo(gdb, log)

	// Dispatch queue
	queue, err := redis.NewDispatchQueue(log)
	if err != nil {
		log.Fatal("Could not init dispatch queue", "error", err)
	}
	defer queue.Close()

	// Outbound mail
	var notifier services.Notifier
	if mail, err := sendgrid.NewFromEnv(log); err != nil {
		log.Warn("Mail client unavailable; announcements will only be logged", "error", err)
		notifier = services.NewLogNotifier(log)
	} else {
		notifier = services.NewEmailNotifier(log, mail)
	}

	// Services
	probe := schema.NewProbe(gdb)
	cascade := services.NewOwnershipCascadeService(gdb, log, probe)
	windowSync := services.NewContractWindowSyncService(gdb, log, orgRepo, subRepo)
	tracker := services.NewDispatchTrackerService(log, annRepo)
	batchNotifier := services.NewBatchNotifierService(gdb, log, annRepo, memberRepo, notifier, tracker)

	userService := services.NewUserService(gdb, log, userRepo, cascade)
	orgService := services.NewOrganizationService(gdb, log, orgRepo, windowSync)
	subService := services.NewSubscriptionService(gdb, log, subRepo, invoiceRepo, planRepo, windowSync)
	billingService := services.NewBillingService(log, subRepo)
	leadService := services.NewLeadService(gdb, log, leadRepo)
	annService := services.NewAnnouncementService(gdb, log, annRepo, memberRepo, queue)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		Auth:                middleware.NewAuth(log),
		UserHandler:         handlers.NewUserHandler(log, userService),
		LeadHandler:         handlers.NewLeadHandler(log, leadService),
		OrganizationHandler: handlers.NewOrganizationHandler(log, orgService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(log, subService),
		BillingHandler:      handlers.NewBillingHandler(log, billingService),
		AnnouncementHandler: handlers.NewAnnouncementHandler(log, annService),
	})

	addr := ":" + envutil.String("PORT", "8080")
	httpServer := &http.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("Dispatch consumer started")
		err := queue.StartConsumer(gctx, func(ctx context.Context, job services.DispatchJob) {
			if err := batchNotifier.DispatchBatch(ctx, job.AnnouncementID, job.RecipientIDs); err != nil {
				log.Error("dispatch batch failed", "announcement_id", job.AnnouncementID, "error", err)
			}
		})
		if err != nil && gctx.Err() != nil {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", "error", err)
	}
	log.Info("shutdown complete")
}
