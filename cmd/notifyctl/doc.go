// Command notifyctl posts, observes and serves notifications.
//
//	notifyctl post com.example.DidSync
//	notifyctl observe com.example.DidSync --count 1
//	notifyctl --prefix com.example observe DidSync
//	notifyctl serve
//
// Settings come from the environment (and ./.env). NOTIFY_TRANSPORT selects
// how processes reach each other: "none" keeps notifications in-process,
// "redis" uses REDIS_* variables and "postgres" uses PG_* variables.
package main
