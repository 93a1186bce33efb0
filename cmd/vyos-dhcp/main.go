package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vitistack/common/pkg/loggers/vlog"

	"github.com/vitistack/vyos-dhcp-operator/internal/clients"
	"github.com/vitistack/vyos-dhcp-operator/internal/consts"
	"github.com/vitistack/vyos-dhcp-operator/internal/handlers"
	"github.com/vitistack/vyos-dhcp-operator/internal/services/initialchecks"
	"github.com/vitistack/vyos-dhcp-operator/internal/services/vyos"
	"github.com/vitistack/vyos-dhcp-operator/internal/settings"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vyos-dhcp",
		Short:         "Inspect and reserve DHCP leases on a VyOS router",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			settings.Init()
		},
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newLeasesCommand())
	cmd.AddCommand(newMappingsCommand())
	cmd.AddCommand(newReserveCommand())
	cmd.AddCommand(newUnreserveCommand())
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newService(ctx context.Context) (*vyos.Service, error) {
	if err := clients.InitializeClients(ctx); err != nil {
		return nil, err
	}
	return vyos.New(clients.VyosClient), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newServeCommand() *cobra.Command {
	var skipChecks bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lease API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			service, err := newService(ctx)
			if err != nil {
				return err
			}
			if !skipChecks {
				if err := initialchecks.InitialChecks(ctx, clients.VyosClient); err != nil {
					return err
				}
			}
			api, err := handlers.New(service, handlers.Config{
				DefaultSubnet: viper.GetString(consts.VYOS_DEFAULT_SUBNET),
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              viper.GetString(consts.HTTP_LISTEN),
				Handler:           api.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				vlog.Info("listening", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			vlog.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "Start without probing the router API")
	return cmd
}

func newLeasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leases",
		Short: "List active DHCP leases",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			service, err := newService(ctx)
			if err != nil {
				return err
			}
			leases, err := service.GetLeases(ctx)
			if err != nil {
				return err
			}
			return printJSON(leases)
		},
	}
}

func newMappingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mappings",
		Short: "List DHCP static mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			service, err := newService(ctx)
			if err != nil {
				return err
			}
			mappings, err := service.GetStaticMappings(ctx)
			if err != nil {
				return err
			}
			return printJSON(mappings)
		},
	}
}

func newReserveCommand() *cobra.Command {
	var pool, subnet, hostname, ip, mac string

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Create a static mapping for a lease",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			service, err := newService(ctx)
			if err != nil {
				return err
			}
			if subnet == "" {
				subnet = viper.GetString(consts.VYOS_DEFAULT_SUBNET)
			}
			if hostname == "" {
				hostname = "host-" + ip
			}
			resp, err := service.SetStaticMapping(ctx, pool, subnet, hostname, ip, mac)
			if err != nil {
				return err
			}
			return printJSON(resp.Data)
		},
	}

	cmd.Flags().StringVar(&pool, "pool", "", "Shared network name")
	cmd.Flags().StringVar(&subnet, "subnet", "", "Subnet in CIDR notation (default VYOS_DEFAULT_SUBNET)")
	cmd.Flags().StringVar(&hostname, "hostname", "", "Mapping name (default host-<ip>)")
	cmd.Flags().StringVar(&ip, "ip", "", "IPv4 address to reserve")
	cmd.Flags().StringVar(&mac, "mac", "", "Hardware address of the client")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("ip")
	_ = cmd.MarkFlagRequired("mac")
	return cmd
}

func newUnreserveCommand() *cobra.Command {
	var pool, subnet, hostname string

	cmd := &cobra.Command{
		Use:   "unreserve",
		Short: "Delete a static mapping",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			service, err := newService(ctx)
			if err != nil {
				return err
			}
			if subnet == "" {
				subnet = viper.GetString(consts.VYOS_DEFAULT_SUBNET)
			}
			resp, err := service.DeleteStaticMapping(ctx, pool, subnet, hostname)
			if err != nil {
				return err
			}
			return printJSON(resp.Data)
		},
	}

	cmd.Flags().StringVar(&pool, "pool", "", "Shared network name")
	cmd.Flags().StringVar(&subnet, "subnet", "", "Subnet in CIDR notation (default VYOS_DEFAULT_SUBNET)")
	cmd.Flags().StringVar(&hostname, "hostname", "", "Mapping name")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("hostname")
	return cmd
}
