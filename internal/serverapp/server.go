package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/mohamedeng1505/scheduler/internal/budget"
	"github.com/mohamedeng1505/scheduler/internal/challenge"
	"github.com/mohamedeng1505/scheduler/internal/config"
	"github.com/mohamedeng1505/scheduler/internal/httpmw"
	"github.com/mohamedeng1505/scheduler/internal/model"
	"github.com/mohamedeng1505/scheduler/internal/schedule"
	"github.com/mohamedeng1505/scheduler/internal/slotlist"
)

type Options struct {
	Config  *config.Config
	DataDir string
	Logger  *log.Logger
}

// App owns the wired repos and handlers. The HTTP handler is built once;
// StartSweep runs the expiry ticker until its context is canceled.
type App struct {
	handler         http.Handler
	scheduleHandler *schedule.Handler
	sweepInterval   time.Duration
	logger          *log.Logger
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.Data.Dir
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	mux := http.NewServeMux()

	scheduleStore, err := schedule.NewFileStore(filepath.Join(opts.DataDir, "schedule"))
	if err != nil {
		return nil, err
	}
	scheduleHandler := schedule.NewHandler(scheduleStore, schedule.NewEngine(nil), opts.Logger)
	mux.HandleFunc("/api/data", scheduleHandler.Data)
	mux.HandleFunc("/api/sync", scheduleHandler.Sync)
	mux.HandleFunc("/api/schedule/cmd", scheduleHandler.Command)

	slotListRepo, err := slotlist.NewFileRepo(filepath.Join(opts.DataDir, "slotlists"))
	if err != nil {
		return nil, err
	}
	scheduleHandler.SetSlotListResolver(func(id string) (model.SavedSlotList, bool) {
		l, err := slotListRepo.Get(model.SlotListID(id))
		if err != nil {
			return model.SavedSlotList{}, false
		}
		return l, true
	})
	slotListHandler := slotlist.NewHandler(slotListRepo)
	slotListHandler.SetSlotSnapshot(func() []model.Slot {
		st, _, err := scheduleStore.Load()
		if err != nil {
			return nil
		}
		return st.Slots
	})
	mux.HandleFunc("/api/slot-lists", slotListHandler.ListsRoot)
	mux.HandleFunc("/api/slot-lists/", slotListHandler.ListsSub)

	budgetStore, err := budget.NewFileStore(filepath.Join(opts.DataDir, "budget"))
	if err != nil {
		return nil, err
	}
	budgetHandler := budget.NewHandler(budgetStore)
	mux.HandleFunc("/api/budget", budgetHandler.BudgetRoot)
	mux.HandleFunc("/api/budget/", budgetHandler.BudgetSub)

	challengeStore, err := challenge.NewFileStore(filepath.Join(opts.DataDir, "challenge"), opts.Config.Challenge.GridSize)
	if err != nil {
		return nil, err
	}
	challengeHandler := challenge.NewHandler(challengeStore)
	mux.HandleFunc("/api/money-challenge", challengeHandler.Challenge)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "scheduler",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if _, _, err := scheduleStore.Load(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "schedule storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "scheduler",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	if opts.Config.Sweep.RunOnLoad {
		if report, err := scheduleHandler.Bootstrap(time.Now()); err != nil {
			opts.Logger.Printf("bootstrap sweep failed: %v", err)
		} else if report.Changed() {
			opts.Logger.Printf("bootstrap sweep: removed %d slots, staged %d tasks",
				len(report.RemovedSlotIDs), len(report.StagedTaskIDs))
		}
	}

	corsMW := cors.New(cors.Options{
		AllowedOrigins: opts.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	})

	handler := httpmw.Chain(
		corsMW.Handler(mux),
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	)

	return &App{
		handler:         handler,
		scheduleHandler: scheduleHandler,
		sweepInterval:   time.Duration(opts.Config.Sweep.IntervalSeconds) * time.Second,
		logger:          opts.Logger,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// StartSweep runs the periodic expiry sweep until ctx is canceled.
func (a *App) StartSweep(ctx context.Context) {
	if a.sweepInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(a.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				report, err := a.scheduleHandler.RunSweep(now)
				if err != nil {
					a.logger.Printf("sweep failed: %v", err)
					continue
				}
				if report.Changed() {
					a.logger.Printf("sweep: removed %d slots, staged %d tasks",
						len(report.RemovedSlotIDs), len(report.StagedTaskIDs))
				}
			}
		}
	}()
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
