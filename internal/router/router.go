package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "vet-clinic-scheduling/docs"
	lrucache "vet-clinic-scheduling/internal/adapters/cache/lru"
	locksmem "vet-clinic-scheduling/internal/adapters/locks/memory"
	"vet-clinic-scheduling/internal/adapters/notify/lognotify"
	mem "vet-clinic-scheduling/internal/adapters/storage/memory"
	pg "vet-clinic-scheduling/internal/adapters/storage/postgres"
	"vet-clinic-scheduling/internal/domain/appointments"
	"vet-clinic-scheduling/internal/domain/patients"
	"vet-clinic-scheduling/internal/middleware"
	"vet-clinic-scheduling/internal/platform/config"
	"vet-clinic-scheduling/internal/platform/logger"
	"vet-clinic-scheduling/internal/ports/auth"
	"vet-clinic-scheduling/internal/ports/locks"
)

// RemoteStore es el backend de agenda externo (adapters/backend/rest).
type RemoteStore interface {
	appointments.Store
	appointments.SubjectChecker
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si viene, las citas se crean/leen en el backend externo.
	Backend RemoteStore

	Config   *config.Config
	Logger   logger.Logger
	Locker   locks.Locker         // nil => lock en proceso
	Notifier appointments.Notifier // nil => solo log

	// Now reemplaza el reloj del guard (tests).
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	loc := cfg.Clinic.Location
	if loc == nil {
		loc = time.UTC
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))

	origins := cfg.HTTP.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.HeaderDebugUserID, middleware.HeaderDebugClinicID, middleware.HeaderDebugRole},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	if cfg.HTTP.RateLimitRPS > 0 {
		r.Use(httprate.LimitByIP(cfg.HTTP.RateLimitRPS, time.Second))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		patientRepo     patients.Repository
		appointmentRepo appointments.Repository
	)
	if opts.DB != nil {
		patientRepo = pg.NewPatientsRepo(opts.DB)
		appointmentRepo = pg.NewAppointmentsRepo(opts.DB)
	} else {
		patientRepo = mem.NewPatientRepo()
		appointmentRepo = mem.NewAppointmentRepo()
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientRepo)
	appointmentsSvc := appointments.NewService(appointmentRepo)

	var (
		store    appointments.Store          = appointmentsSvc
		subjects appointments.SubjectChecker = patientsSvc
	)
	if opts.Backend != nil {
		store = opts.Backend
		subjects = opts.Backend
	}
	if cached, err := lrucache.NewSubjectCache(subjects, cfg.Cache.PatientSize, log); err == nil {
		subjects = cached
	} else {
		log.Warn("subject cache disabled", map[string]any{"error": err})
	}

	hours := appointments.DefaultWorkingHours(loc)
	if cfg.Clinic.WorkdayStart != "" && cfg.Clinic.WorkdayEnd != "" {
		if wh, err := appointments.ParseWorkingHours(loc, cfg.Clinic.WorkdayStart, cfg.Clinic.WorkdayEnd); err == nil {
			hours = wh
		} else {
			log.Warn("invalid workday window, using default", map[string]any{"error": err})
		}
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = lognotify.New(log)
	}
	locker := opts.Locker
	if locker == nil {
		locker = locksmem.NewLocker()
	}

	submitter := appointments.NewSubmitter(store, hours,
		appointments.WithSubjects(subjects),
		appointments.WithNotifier(notifier),
		appointments.WithLogger(log.With(map[string]any{"component": "submitter"})),
		appointments.WithClock(opts.Now),
	)

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc)
	appointments.RegisterRoutes(r, appointments.Deps{
		Submitter: submitter,
		Store:     store,
		Locker:    locker,
		LockTTL:   cfg.Redis.SubmitLockTTL,
		Location:  loc,
		Validate:  validator.New(),
		Log:       log,
	})

	return r
}
