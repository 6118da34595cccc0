package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"muxbot/internal/agent"
	"muxbot/internal/config"
	"muxbot/internal/conversation"
	"muxbot/internal/logging"
	"muxbot/internal/model"
	"muxbot/internal/provider"
	"muxbot/internal/version"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func isTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MUXBOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	root := &cobra.Command{
		Use:     "muxbot",
		Short:   "Terminal AI assistant with profile-based provider fallback",
		Version: version.Full(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(v)
		},
		SilenceUsage: true,
	}

	flags := root.Flags()
	flags.String("config", "", "path to config.yaml (default: XDG location)")
	flags.String("agent", agent.PrimaryAgent, "agent role to chat with")
	flags.Bool("model-cache", true, "cache constructed models per provider:model")
	flags.Float64("rate-limit", 0, "max model requests per second (0 = unlimited)")
	_ = v.BindPFlags(flags)

	root.AddCommand(newConfigCmd(v))
	root.AddCommand(newProvidersCmd())
	return root
}

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered model providers",
		Run: func(cmd *cobra.Command, args []string) {
			registry := provider.NewRegistry()
			provider.RegisterBuiltins(registry)
			for _, name := range registry.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage muxbot configuration",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the resolved config file path",
		Run: func(cmd *cobra.Command, args []string) {
			path, source := config.ResolveConfigPath(config.DefaultEnvLookup, os.UserHomeDir)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, source)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a starter config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString("config")
			if path == "" {
				path, _ = config.ResolveConfigPath(config.DefaultEnvLookup, os.UserHomeDir)
			}
			if err := config.SaveTemplate(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), green("created ")+path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Copy a legacy ./config.yaml to the XDG location",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewComponentLogger("config-migrate")
			status, err := config.Migrate(logger, config.DefaultEnvLookup, os.UserHomeDir)
			if err != nil {
				return err
			}
			switch {
			case status.TargetExists && status.LegacyExists:
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("config at"), status.TargetPath)
				fmt.Fprintf(cmd.OutOrStdout(), "%s you can remove the legacy file %s\n", gray("note:"), status.LegacyPath)
			case status.TargetExists:
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("config at"), status.TargetPath)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "no legacy configuration found, nothing to migrate")
			}
			return nil
		},
	})

	return configCmd
}

func runChat(v *viper.Viper) error {
	logger := logging.NewComponentLogger("muxbot")

	cfg, err := config.Load(config.WithConfigPath(v.GetString("config")))
	if err != nil {
		return err
	}

	report := config.Validate(cfg)
	for _, warning := range report.Warnings {
		fmt.Fprintln(os.Stderr, yellow("warning: ")+warning.Message)
	}
	if report.HasErrors() {
		for _, issue := range report.Errors {
			msg := issue.Message
			if issue.Hint != "" {
				msg += " (" + issue.Hint + ")"
			}
			fmt.Fprintln(os.Stderr, red("config error: ")+msg)
		}
		return errors.New("configuration is not usable")
	}

	registry := provider.NewRegistry()
	provider.RegisterBuiltins(registry)
	if v.GetBool("model-cache") {
		for _, name := range registry.Names() {
			factory, err := registry.Lookup(name)
			if err != nil {
				continue
			}
			registry.Register(name, provider.NewCachingFactory(factory, provider.DefaultCacheSize, provider.DefaultCacheTTL))
		}
	}

	factory := model.NewFactory(cfg, registry)

	agentName := v.GetString("agent")
	var opts []agent.Option
	if rps := v.GetFloat64("rate-limit"); rps > 0 {
		opts = append(opts, agent.WithModelWrapper(func(m provider.Model) provider.Model {
			return provider.WrapWithRateLimit(m, rps, 1)
		}))
	}

	bot, err := agent.New(cfg, factory, agentName, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, red("failed to initialize AI agent"))
		fmt.Fprintln(os.Stderr, gray("check that your API keys are set, model names are valid, and the network is reachable"))
		return err
	}

	fmt.Printf("%s agent %s ready on %s/%s\n",
		green("muxbot"), bold(bot.Name), bot.Model().Provider(), bot.Model().Name())
	if isTTY() {
		fmt.Println(gray("commands: /exit to quit, /clear to reset the conversation"))
	}

	conv := conversation.NewContext(cfg.MaxHistory, time.Duration(cfg.ConversationTimeout)*time.Second)
	return chatLoop(logger, bot, conv)
}

func chatLoop(logger logging.Logger, bot *agent.Agent, conv *conversation.Context) error {
	rl, err := readline.New(bold("muxbot> "))
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer func() {
		_ = rl.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println(yellow("goodbye"))
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		switch {
		case input == "":
			continue
		case input == "/exit":
			fmt.Println(yellow("goodbye"))
			return nil
		case input == "/clear":
			conv.Clear()
			fmt.Println(gray("conversation cleared"))
			continue
		}

		reply, err := bot.Respond(ctx, conv, input)
		if err != nil {
			logger.Error("completion failed: %v", err)
			fmt.Println(red("error: ") + err.Error())
			continue
		}
		fmt.Println(reply)
	}
}
