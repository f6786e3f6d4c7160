// Package bootstrap initializes a lazykit application in one call.
//
// NewApp loads config.Settings (YAML, .env and environment), initializes
// the logger and installs lazy pipeline observability:
//
//	app, err := bootstrap.NewApp(ctx, "catalog")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, _ := rediskv.NewClient(redisCfg)
//	app.OnStop(func(context.Context) error { return client.Close() })
//
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    name, err := rediskv.Get(ctx, client, "user:1").Await(ctx)
//	    ...
//	})
package bootstrap
