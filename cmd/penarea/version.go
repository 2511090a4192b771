package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/client"
	"github.com/penarea/penarea/pkg/version"
)

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)

			daemonVersion, err := apiClient.GetVersion()
			switch {
			case err == nil && daemonVersion != version.Version:
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"daemonVersion": daemonVersion,
				}).Warn("Version mismatch between client and daemon. Restart the daemon after upgrading.")
			case err == nil:
				cmd.Printf("daemon %s\n", daemonVersion)
			case !errors.Is(err, client.ErrDaemonNotRunning):
				logrus.WithError(err).Debug("failed to get daemon version")
			}
		},
	}
}
