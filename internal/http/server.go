package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/config"
	"github.com/mauv0809/club-ladder/internal/http/handlers"
	"github.com/mauv0809/club-ladder/internal/inngest"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
)

// NewServer wires the routes. inngestClient may be nil when the scheduler is
// not configured.
func NewServer(store club.ClubStore, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient, inngestClient inngest.InngestClient) *Server {
	server := &Server{
		Store:          store,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         chi.NewRouter(),
		InngestClient:  inngestClient,
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	origins := s.Cfg.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.Router.Use(paramsMiddleware)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Get("/health", handlers.HealthCheckHandler())
	s.Router.Post("/clear", handlers.ClearStoreHandler(s.Store))
	s.Router.Post("/fetch", handlers.FetchMatchesHandler(s.Processor))
	s.Router.Post("/pubsub/run-transitions", handlers.RunTransitionsHandler(s.Processor, s.pubsub))
	s.Router.With(slackVerifier(s.Cfg.Slack.SigningSecret)).
		Post("/slack/command/ladder", handlers.LadderCommandHandler(s.Processor, s.Notifier))
	if s.InngestClient != nil {
		s.Router.Handle("/api/inngest", s.InngestClient.Serve())
	}

	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Get("/groups", handlers.ListGroupsHandler(s.Store))
		r.Post("/groups", handlers.CreateGroupHandler(s.Store))
		r.Post("/groups/process-transitions", handlers.ProcessTransitionsHandler(s.Processor))
		r.Post("/groups/{groupID}/process-transition", handlers.ProcessGroupTransitionHandler(s.Processor))

		r.Get("/players", handlers.ListPlayersHandler(s.Store))
		r.Post("/players", handlers.RegisterPlayerHandler(s.Store))
		r.Get("/players/{playerID}", handlers.GetPlayerHandler(s.Store))
		r.Get("/players/{playerID}/history", handlers.PlayerHistoryHandler(s.Store))

		r.Post("/games", handlers.RecordGameHandler(s.Processor))

		r.Get("/rankings/all", handlers.AllRankingsHandler(s.Processor))
		r.Get("/rankings/export.xlsx", handlers.ExportLadderHandler(s.Processor))
		r.Get("/rankings/group/{groupID}", handlers.GroupRankingHandler(s.Processor))
		r.Get("/rankings/group/{groupID}/chart.png", handlers.GroupChartHandler(s.Processor))
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
