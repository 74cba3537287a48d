package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/config"
	"github.com/mauv0809/club-ladder/internal/inngest"
	"github.com/mauv0809/club-ladder/internal/notifier"
	"github.com/mauv0809/club-ladder/internal/processor"
	"github.com/mauv0809/club-ladder/internal/pubsub"
)

type Server struct {
	Store          club.ClubStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         chi.Router
	InngestClient  inngest.InngestClient
	pubsub         pubsub.PubSubClient
}
