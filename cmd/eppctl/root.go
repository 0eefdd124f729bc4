package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/danmuck/eppctl/internal/config"
	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/epp/extension/consolidate"
	"github.com/danmuck/eppctl/internal/epp/extension/namestore"
	"github.com/danmuck/eppctl/internal/epp/extension/rgp"
	"github.com/danmuck/eppctl/internal/epp/message"
	"github.com/danmuck/eppctl/internal/epp/monthday"
	"github.com/danmuck/eppctl/internal/epp/transport"
	"github.com/danmuck/eppctl/internal/observability"
)

var errUsage = errors.New("bad usage")

// options holds the persistent flags shared by every request command.
type options struct {
	configPath  string
	registry    string
	send        bool
	clTRID      string
	timeout     time.Duration
	metricsFile string

	stdout io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout}
	root := &cobra.Command{
		Use:           "eppctl",
		Short:         "Build and send EPP domain commands with registry extensions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "eppctl.toml", "registry config file")
	pf.StringVar(&opts.registry, "registry", "", "registry name from the config (required with --send)")
	pf.BoolVar(&opts.send, "send", false, "send the request once instead of printing it")
	pf.StringVar(&opts.clTRID, "cltrid", "", "client transaction id (default: random uuid)")
	pf.DurationVar(&opts.timeout, "timeout", time.Minute, "overall deadline with --send")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics here after --send")

	root.AddCommand(
		checkCmd(opts),
		infoCmd(opts),
		restoreCmd(opts),
		syncCmd(opts),
		ackCmd(opts),
		initCmd(opts),
		validateCmd(opts),
	)
	return root
}

func checkCmd(opts *options) *cobra.Command {
	var subProduct string
	cmd := &cobra.Command{
		Use:   "check NAME...",
		Short: "domain:check, optionally with a NameStore subproduct",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := domain.NewCheck(args...)
			if subProduct != "" {
				req, err := epp.Attach(c, namestore.New(subProduct))
				if err != nil {
					return err
				}
				return execute(cmd.Context(), opts, req, printCheck[namestore.NameStore])
			}
			return execute(cmd.Context(), opts, epp.New(c), printCheck[epp.NoExtension])
		},
	}
	cmd.Flags().StringVar(&subProduct, "subproduct", "", "NameStore subproduct, e.g. com or net")
	return cmd
}

func infoCmd(opts *options) *cobra.Command {
	var subProduct string
	var withRGP bool
	cmd := &cobra.Command{
		Use:   "info NAME",
		Short: "domain:info, optionally with NameStore or RGP state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i := domain.NewInfo(args[0])
			switch {
			case withRGP && subProduct != "":
				return fmt.Errorf("%w: --rgp and --subproduct are exclusive", errUsage)
			case withRGP:
				return execute(cmd.Context(), opts, domain.InfoWith(i, rgp.NewRestoreRequest()), printInfo[rgp.Response])
			case subProduct != "":
				return execute(cmd.Context(), opts, domain.InfoWith(i, namestore.New(subProduct)), printInfo[namestore.NameStore])
			}
			return execute(cmd.Context(), opts, epp.New(i), printInfo[epp.NoExtension])
		},
	}
	cmd.Flags().StringVar(&subProduct, "subproduct", "", "NameStore subproduct, e.g. com or net")
	cmd.Flags().BoolVar(&withRGP, "rgp", false, "attach an RGP restore request to read grace period state")
	return cmd
}

func restoreCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "update-restore NAME",
		Short: "domain:update carrying an RGP restore request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.UpdateWith(domain.NewUpdate(args[0]), rgp.NewRestoreRequest())
			return execute(cmd.Context(), opts, req, printUpdate[rgp.Response])
		},
	}
}

func syncCmd(opts *options) *cobra.Command {
	var subProduct string
	cmd := &cobra.Command{
		Use:   "sync NAME MM-DD",
		Short: "domain:update moving the expiration with ConsoliDate",
		Long:  "The date is a month-day such as 05-31 or --05-31+02:00. Use -- before a value starting with dashes.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := args[1]
			if !strings.HasPrefix(raw, "--") {
				raw = "--" + raw
			}
			md, err := monthday.Parse(raw)
			if err != nil {
				return err
			}
			u := domain.NewUpdate(args[0])
			if subProduct != "" {
				req := domain.UpdateWith(u, consolidate.NewWithNameStore(md, subProduct))
				return execute(cmd.Context(), opts, req, printUpdate[namestore.NameStore])
			}
			return execute(cmd.Context(), opts, domain.UpdateWith(u, consolidate.New(md)), printUpdate[epp.NoExtension])
		},
	}
	cmd.Flags().StringVar(&subProduct, "subproduct", "", "nest a NameStore subproduct in the sync extension")
	return cmd
}

func ackCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ack MSGID",
		Short: "poll ack, removing a message from the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("%w: ack id %q: %w", errUsage, args[0], err)
			}
			return execute(cmd.Context(), opts, epp.New(message.NewAck(uint32(id))), printUpdate[epp.NoExtension])
		},
	}
}

func initCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "write a config template to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.WriteTemplate(opts.configPath, force); err != nil {
				return err
			}
			fmt.Fprintf(opts.stdout, "wrote config template to %s\n", opts.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "load --config and list its registries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			for _, name := range cfg.Names() {
				r := cfg.Registries[name]
				fmt.Fprintf(opts.stdout, "%s\t%s\ttls=%t\text=%d\n", name, r.Transport.Address(), r.Transport.TLS.Enabled, len(r.ExtURIs))
			}
			return nil
		},
	}
}

// execute prints the request document, or with --send exchanges it once and
// prints the decoded response.
func execute[T, R any](ctx context.Context, opts *options, req epp.Request[T, R], render func(io.Writer, *epp.Response[T, R])) error {
	clTRID := opts.clTRID
	if clTRID == "" {
		clTRID = uuid.NewString()
	}
	if !opts.send {
		doc, err := req.Encode(clTRID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(opts.stdout, "%s\n", doc)
		return err
	}

	reg, err := loadRegistry(opts)
	if err != nil {
		return err
	}
	for _, uri := range extensionURIs(req.Extension()) {
		if !reg.Supports(uri) {
			log.Warn().Str("registry", reg.Name).Str("uri", uri).Msg("eppctl: extension not listed in ext_uris")
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	conn, err := transport.Dial(ctx, reg.Transport)
	if err != nil {
		return err
	}
	defer conn.Close()

	client := epp.NewClient(conn,
		epp.WithTrIDSource(func() string { return clTRID }),
		epp.WithObserver(observability.RecordTransaction),
	)
	resp, err := epp.Transact(ctx, client, req)
	if resp != nil {
		printEnvelope(opts.stdout, resp.Result, resp.MsgQueue, resp.TrIDs)
		render(opts.stdout, resp)
	}
	if opts.metricsFile != "" {
		if werr := observability.WriteTextfile(opts.metricsFile); werr != nil {
			log.Error().Err(werr).Str("path", opts.metricsFile).Msg("eppctl: write metrics failed")
		}
	}
	return err
}

func loadRegistry(opts *options) (config.Registry, error) {
	if strings.TrimSpace(opts.registry) == "" {
		return config.Registry{}, fmt.Errorf("%w: --send needs --registry", errUsage)
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Registry{}, err
	}
	return cfg.Registry(opts.registry)
}

func extensionURIs(ext any) []string {
	switch ext.(type) {
	case namestore.NameStore:
		return []string{namestore.XMLNS}
	case consolidate.Update:
		return []string{consolidate.XMLNS}
	case consolidate.UpdateWithNameStore:
		return []string{consolidate.XMLNS, namestore.XMLNS}
	case rgp.RestoreRequest:
		return []string{rgp.XMLNS}
	}
	return nil
}
