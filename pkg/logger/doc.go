// Package logger builds *slog.Logger instances for notifycenter services.
//
// New assembles a text or JSON handler from functional options and, when
// context extractors are registered, wraps it in LogHandlerDecorator so that
// values stored in a context.Context are attached to every record logged
// through the *Context methods.
//
//	log := logger.New(
//	    logger.WithDevelopment("notifyctl"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.Info("posted", logger.Notification("com.example.DidSync"))
//
// NewFromConfig does the same from a Config populated by pkg/config:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.NewFromConfig(cfg)
//
// Attribute helpers (Error, Notification, Origin, Component, ...) keep key
// names consistent across packages. Error and Errors return an empty
// attribute for nil errors, which slog drops, so callers need no nil check.
package logger
