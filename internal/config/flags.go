package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
)

var (
	errAddressFormat = errors.New("need address in a form `host:port`")
	errPortRange     = errors.New("port must be in 1..65535")
	errHost          = errors.New("host must be localhost or an IP address")
)

// NetAddress is a host:port flag value. An empty host listens on every
// interface; IPv6 hosts are written in brackets.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags reads the server command line. Flags left unset stay zero so
// that env and JSON values survive the merge.
//
//	-a, -grpc-address         listen addresses
//	-d                        PostgreSQL DSN
//	-c, -config               JSON config file
//	-token-sign-key, -token-issuer, -token-duration
//	-hash-key                 push batch integrity key
//	-request-timeout          per-request deadline of the HTTP server
//	-log-level                zerolog level
//	-collab-grace             how long inactive participants stay listed
//	-collab-flush             cron spec of the document flush job
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		httpAddress, grpcAddress NetAddress
		cfg                      StructuredConfig
	)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.Var(&httpAddress, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token lifetime, e.g. 24h")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Push batch integrity key")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout, e.g. 30s")
	fs.StringVar(&cfg.Log.Level, "log-level", "", "Log level")
	fs.DurationVar(&cfg.Collaboration.InactiveGrace, "collab-grace", 0, "Inactive participant grace period")
	fs.StringVar(&cfg.Collaboration.FlushSchedule, "collab-flush", "", "Cron spec of the document flush job")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()
	return &cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, portString, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errAddressFormat, err)
	}

	port, err := strconv.Atoi(portString)
	if err != nil || port < 1 || port > 65535 {
		return errPortRange
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errHost
	}

	a.Host = host
	a.Port = port
	return nil
}
