package handler

import (
	"github.com/codydotio/pulse/internal/app/alien"
	"github.com/codydotio/pulse/internal/app/ledger"
	"github.com/codydotio/pulse/internal/app/stream"
	"github.com/codydotio/pulse/internal/configs"
)

// AppDeps bundles the collaborators every handler may need.
type AppDeps struct {
	Store    *ledger.Store
	Config   *configs.AppConfig
	Hub      *stream.Hub
	Identity alien.IdentityProvider
	Payments alien.PaymentProvider
}
