package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/cancel_booking"
	completeUploadHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/complete_upload"
	createBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_booking"
	createFineHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_fine"
	createInvoiceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_invoice"
	createPaymentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_payment"
	deleteDocumentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_document"
	deleteFineHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_fine"
	deleteInvoiceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_invoice"
	deletePaymentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_payment"
	downloadDocumentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/download_document"
	downloadSharedHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/download_shared"
	getBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_booking"
	getInvoiceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_invoice"
	listBookingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_bookings"
	listDocumentsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_documents"
	listDuplicatesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_duplicates"
	listFinesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_fines"
	listInvoicesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_invoices"
	listMessagesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_messages"
	listNotificationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_notifications"
	listPaymentsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_payments"
	mergeDuplicatesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/merge_duplicates"
	readNotificationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/read_notification"
	runRemindersHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/run_reminders"
	sendMessageHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/send_message"
	shareDocumentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/share_document"
	signUploadHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/sign_upload"
	updateBookingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_booking"
	updateFineHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_fine"
	updateInvoiceHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_invoice"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/api/ws"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/infra/filestore"
	bookingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/booking"
	chatRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/chat"
	documentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/document"
	fineRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/fine"
	invoiceRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/invoice"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	mailerClient "github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
	"github.com/m04kA/SMC-RentalService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-RentalService/internal/service/bookings"
	chatService "github.com/m04kA/SMC-RentalService/internal/service/chat"
	documentsService "github.com/m04kA/SMC-RentalService/internal/service/documents"
	finesService "github.com/m04kA/SMC-RentalService/internal/service/fines"
	invoicesService "github.com/m04kA/SMC-RentalService/internal/service/invoices"
	paymentsService "github.com/m04kA/SMC-RentalService/internal/service/payments"
	detectDuplicatesUC "github.com/m04kA/SMC-RentalService/internal/usecase/detect_duplicates"
	mergeNamesUC "github.com/m04kA/SMC-RentalService/internal/usecase/merge_names"
	sendRemindersUC "github.com/m04kA/SMC-RentalService/internal/usecase/send_reminders"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем файловое хранилище документов
	fileStore, err := filestore.New(filestore.Config{
		Bucket:          cfg.Storage.Bucket,
		SignerEmail:     cfg.Storage.SignerEmail,
		SignerKeyPEM:    cfg.Storage.SignerPrivateKeyRaw,
		CredentialsFile: cfg.Storage.CredentialsFile,
		URLTTL:          time.Duration(cfg.Storage.SignedURLTTL) * time.Second,
	})
	if err != nil {
		log.Fatal("Failed to initialize file store: %v", err)
	}
	log.Info("File store initialized (bucket=%s)", cfg.Storage.Bucket)

	// Инициализируем клиента почтовой автоматизации
	mailer := mailerClient.NewClient(
		cfg.Mailer.WebhookURL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer webhook client initialized (timeout=%ds)", cfg.Mailer.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		invoiceRepository  *invoiceRepo.Repository
		fineRepository     *fineRepo.Repository
		paymentRepository  *paymentRepo.Repository
		chatRepository     *chatRepo.Repository
		documentRepository *documentRepo.Repository
	)

	// Интерфейс для transaction manager (платежи и объединение имён)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		invoiceRepository = invoiceRepo.NewRepository(wrappedDB)
		fineRepository = fineRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		chatRepository = chatRepo.NewRepository(wrappedDB)
		documentRepository = documentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		invoiceRepository = invoiceRepo.NewRepository(db)
		fineRepository = fineRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		chatRepository = chatRepo.NewRepository(db)
		documentRepository = documentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := bookingsService.RealTimeProvider{}

	// Websocket хаб для чата и уведомлений
	hub := ws.NewHub(log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, timeProvider, log)
	invoiceSvc := invoicesService.NewService(invoiceRepository, log)
	fineSvc := finesService.NewService(fineRepository, log)
	paymentSvc := paymentsService.NewService(paymentRepository, bookingRepository, txMgr, log)
	chatSvc := chatService.NewService(chatRepository, hub, log)
	documentSvc := documentsService.NewService(
		documentRepository,
		fileStore,
		timeProvider,
		cfg.Storage.MaxUploadSizeBytes,
		time.Duration(cfg.Storage.ShareTokenTTLHours)*time.Hour,
		log,
	)

	// Инициализируем use cases
	sendRemindersUseCase := sendRemindersUC.New(
		bookingRepository,
		mailer,
		chatSvc,
		timeProvider,
		remindersMetrics(metricsCollector),
		cfg.Reminders.OpsUserIDs,
		log,
	)
	detectDuplicatesUseCase := detectDuplicatesUC.New(bookingRepository, invoiceRepository, log)
	mergeNamesUseCase := mergeNamesUC.New(bookingRepository, invoiceRepository, fineRepository, txMgr, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)

	createInvoice := createInvoiceHandler.NewHandler(invoiceSvc, log)
	getInvoice := getInvoiceHandler.NewHandler(invoiceSvc, log)
	listInvoices := listInvoicesHandler.NewHandler(invoiceSvc, log)
	updateInvoice := updateInvoiceHandler.NewHandler(invoiceSvc, log)
	deleteInvoice := deleteInvoiceHandler.NewHandler(invoiceSvc, log)

	createFine := createFineHandler.NewHandler(fineSvc, log)
	listFines := listFinesHandler.NewHandler(fineSvc, log)
	updateFine := updateFineHandler.NewHandler(fineSvc, log)
	deleteFine := deleteFineHandler.NewHandler(fineSvc, log)

	createPayment := createPaymentHandler.NewHandler(paymentSvc, log)
	listPayments := listPaymentsHandler.NewHandler(paymentSvc, log)
	deletePayment := deletePaymentHandler.NewHandler(paymentSvc, log)

	sendMessage := sendMessageHandler.NewHandler(chatSvc, log)
	listMessages := listMessagesHandler.NewHandler(chatSvc, log)
	listNotifications := listNotificationsHandler.NewHandler(chatSvc, log)
	readNotification := readNotificationHandler.NewHandler(chatSvc, log)

	signUpload := signUploadHandler.NewHandler(documentSvc, log)
	completeUpload := completeUploadHandler.NewHandler(documentSvc, log)
	listDocuments := listDocumentsHandler.NewHandler(documentSvc, log)
	downloadDocument := downloadDocumentHandler.NewHandler(documentSvc, log)
	deleteDocument := deleteDocumentHandler.NewHandler(documentSvc, log)
	shareDocument := shareDocumentHandler.NewHandler(documentSvc, log)
	downloadShared := downloadSharedHandler.NewHandler(documentSvc, log)

	listDuplicates := listDuplicatesHandler.NewHandler(detectDuplicatesUseCase, log)
	mergeDuplicates := mergeDuplicatesHandler.NewHandler(mergeNamesUseCase, log)
	runReminders := runRemindersHandler.NewHandler(sendRemindersUseCase, log)

	wsHandler := ws.NewHandler(hub, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Скачивание документа по публичной ссылке
	r.HandleFunc("/public/documents/{token}", downloadShared.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// --- Счета ---
	protected.HandleFunc("/invoices", createInvoice.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/invoices", listInvoices.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{invoiceId}", getInvoice.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/invoices/{invoiceId}", updateInvoice.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/invoices/{invoiceId}", deleteInvoice.Handle).Methods(http.MethodDelete)

	// --- Штрафы ---
	protected.HandleFunc("/fines", createFine.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/fines", listFines.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/fines/{fineId}", updateFine.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/fines/{fineId}", deleteFine.Handle).Methods(http.MethodDelete)

	// --- Платежи ---
	protected.HandleFunc("/payments", createPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments", listPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{paymentId}", deletePayment.Handle).Methods(http.MethodDelete)

	// --- Чат и уведомления ---
	protected.HandleFunc("/chat/messages", sendMessage.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/chat/{entityType}/{entityId}/messages", listMessages.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications", listNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{notificationId}/read", readNotification.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/ws", wsHandler.Handle).Methods(http.MethodGet)

	// --- Документы ---
	protected.HandleFunc("/documents/sign-upload", signUpload.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/documents", completeUpload.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/documents/{documentId:[0-9]+}/download-url", downloadDocument.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/documents/{documentId:[0-9]+}/share", shareDocument.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/documents/{documentId:[0-9]+}", deleteDocument.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/documents/{entityType}/{entityId:[0-9]+}", listDocuments.Handle).Methods(http.MethodGet)

	// --- Клиенты: дубликаты имён ---
	protected.HandleFunc("/clients/duplicates", listDuplicates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clients/merge", mergeDuplicates.Handle).Methods(http.MethodPost)

	// --- Служебные ---
	protected.HandleFunc("/internal/reminders/run", runReminders.Handle).Methods(http.MethodPost)

	// Запускаем планировщик напоминаний
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()

	var reminderScheduler *scheduler.Scheduler
	if cfg.Reminders.Enabled {
		reminderScheduler = scheduler.New(
			sendRemindersUseCase,
			time.Duration(cfg.Reminders.IntervalMinutes)*time.Minute,
			log,
		)
		reminderScheduler.Start(schedulerCtx)
		log.Info("Reminder scheduler started (interval=%dm)", cfg.Reminders.IntervalMinutes)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем планировщик
	if reminderScheduler != nil {
		stopScheduler()
		reminderScheduler.Stop()
		log.Info("Reminder scheduler stopped")
	}

	// Закрываем websocket подключения
	hub.Shutdown()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// remindersMetrics возвращает коллектор метрик напоминаний
// При выключенных метриках используется no-op заглушка
func remindersMetrics(collector *metrics.Metrics) sendRemindersUC.MetricsCollector {
	if collector != nil {
		return collector
	}
	return noopReminderMetrics{}
}

type noopReminderMetrics struct{}

func (noopReminderMetrics) ObserveReminderBatch(string)        {}
func (noopReminderMetrics) ObserveReminderSent(string, string) {}
