package main

import (
	"github.com/spf13/cobra"

	dbcmd "github.com/faciam-dev/customfields/cmd/fieldctl/db"
	"github.com/faciam-dev/customfields/internal/config"
	"github.com/faciam-dev/customfields/internal/customfield/audit"
	cliconfig "github.com/faciam-dev/customfields/pkg/config"
	"github.com/faciam-dev/customfields/pkg/util"
	"github.com/faciam-dev/customfields/sdk"
	"github.com/faciam-dev/customfields/sdk/client"
)

// newClient returns an API client when an API URL resolves from flags,
// environment or profile, and a database backed client otherwise. The returned func releases the connection.
func newClient(cmd *cobra.Command, f *dbcmd.DBFlags) (client.Client, func(), error) {
	target, err := cliconfig.Resolve(cmd)
	if err != nil {
		return nil, nil, err
	}
	if target.APIURL != "" {
		var opts []client.Option
		if target.Token != "" {
			opts = append(opts, client.WithToken(target.Token))
		}
		return client.NewHTTP(target.APIURL, opts...), func() {}, nil
	}

	fields, err := config.Load(util.GetEnv("CF_CONFIG", ""))
	if err != nil {
		return nil, nil, err
	}
	if f.TablePrefix != "" {
		fields.TablePrefix = f.TablePrefix
	}
	db, err := f.Open()
	if err != nil {
		return nil, nil, err
	}
	svc, err := sdk.New(sdk.ServiceConfig{
		DB:       db,
		Driver:   f.Driver,
		Fields:   fields,
		Actor:    "fieldctl",
		Recorder: &audit.Recorder{DB: db, Driver: f.Driver, TablePrefix: fields.TablePrefix},
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return client.NewLocalService(svc), func() { _ = db.Close() }, nil
}
