// Package redis connects notifycenter hubs in different processes through
// Redis pub/sub.
//
// Connect opens a go-redis client with retries, Healthcheck produces a probe
// for the HTTP bridge, and Transport implements notifycenter.Transport:
// every notification name maps to the channel ChannelPrefix+name, and
// envelopes travel as JSON.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	hub := notifycenter.New(
//	    notifycenter.WithTransport(redis.NewTransportFromConfig(ctx, client, cfg)),
//	)
//	defer hub.Close()
//
// Configuration is read from REDIS_* environment variables; see Config.
package redis
