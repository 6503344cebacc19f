package main

import (
	"github.com/ipflix/ipflix/internal/adapter/external/threatintel"
	"github.com/ipflix/ipflix/internal/app"
	"github.com/ipflix/ipflix/internal/config"
	"github.com/ipflix/ipflix/internal/entity"
	"github.com/spf13/cobra"
)

// lookupReport combines every lookup of one IP
type lookupReport struct {
	IP       string                        `json:"ip" yaml:"ip"`
	Location *entity.GeoLocation           `json:"location" yaml:"location"`
	Network  entity.NetworkDetailsResponse `json:"network" yaml:"network"`
	Threat   entity.ThreatReport           `json:"threat" yaml:"threat"`
	OSINT    entity.OSINTResult            `json:"osint" yaml:"osint"`
	Services []portService                 `json:"services" yaml:"services"`
}

// portService labels an open port seen by Shodan
type portService struct {
	Port    int    `json:"port" yaml:"port"`
	Service string `json:"service" yaml:"service"`
}

func portServices(shodan *entity.ShodanData) []portService {
	services := []portService{}
	if shodan == nil {
		return services
	}
	for _, port := range shodan.Ports {
		services = append(services, portService{Port: port, Service: threatintel.PortName(port)})
	}
	return services
}

func newLookupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <ip>",
		Short: "Geolocation, network, threat and OSINT report for an IP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(opts.configFile)
			if err != nil {
				return err
			}

			a := app.New(cfg, opts.logger(cfg))
			defer a.Close()

			ctx := cmd.Context()
			ip := args[0]

			report := lookupReport{
				IP:       ip,
				Location: a.Resolver.Resolve(ctx, ip),
				Network:  a.Service.NetworkDetails(ctx, ip),
				Threat:   a.Service.Threat(ctx, ip),
				OSINT:    a.Service.OSINT(ctx, ip),
			}
			report.Services = portServices(report.OSINT.Shodan)

			return writeReport(opts.out, opts.output, report)
		},
	}
}
