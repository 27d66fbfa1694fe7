package commands

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/shufa/config"
	"github.com/teranos/shufa/engine"
	"github.com/teranos/shufa/errors"
	"github.com/teranos/shufa/gateway"
	"github.com/teranos/shufa/kb"
	"github.com/teranos/shufa/logger"
)

// stack is everything a query command needs, built from flags and config
type stack struct {
	cfg       *config.Config
	kb        *kb.KnowledgeBase
	source    string // dataset path or "built-in"
	engine    *engine.Engine
	verbosity int
	log       *zap.SugaredLogger
}

// flagString reads a (possibly inherited) string flag, "" when undefined
func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// verbosity reads the global -v count, 0 when undefined
func verbosity(cmd *cobra.Command) int {
	if cmd.Flags().Lookup("verbose") == nil {
		return 0
	}
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// loadConfig honours --config, falling back to the layered search
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path := flagString(cmd, "config"); path != "" {
		return config.LoadFromFile(path)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return cfg, nil
}

// loadKnowledgeBase picks --dataset, then dataset.path, then the built-in data
func loadKnowledgeBase(cmd *cobra.Command, cfg *config.Config) (*kb.KnowledgeBase, string, error) {
	path := flagString(cmd, "dataset")
	if path == "" && cfg != nil {
		path = cfg.Dataset.Path
	}
	if path == "" {
		return kb.Default(), "built-in", nil
	}
	k, err := kb.Load(path)
	if err != nil {
		return nil, path, err
	}
	return k, path, nil
}

func setup(cmd *cobra.Command) (*stack, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	k, source, err := loadKnowledgeBase(cmd, cfg)
	if err != nil {
		return nil, err
	}

	log := logger.Named("cli")
	log.Debugw("Knowledge base loaded",
		logger.FieldDataset, source,
		"version", k.Version(),
		logger.FieldCalligraphers, len(k.Calligraphers()),
		logger.FieldStyles, len(k.Styles()),
	)

	return &stack{
		cfg:       cfg,
		kb:        k,
		source:    source,
		engine:    engine.New(k),
		verbosity: verbosity(cmd),
		log:       log,
	}, nil
}

// newRewriter builds the configured gateway. raw forces passthrough.
// The returned cleanup func is never nil.
func newRewriter(cfg *config.Config, k *kb.KnowledgeBase, raw bool) (gateway.Rewriter, func(), error) {
	if raw || cfg.Gateway.Provider == config.ProviderPassthrough {
		return gateway.Passthrough{}, func() {}, nil
	}

	if cfg.Gateway.APIKey == "" {
		return nil, nil, errors.WithHint(
			errors.Wrap(errors.ErrInvalidConfig, "gateway.provider is chat but no API key is set"),
			"export SHUFA_GATEWAY_API_KEY, or pass --raw to type canonical sentences",
		)
	}

	rw := gateway.NewChatRewriter(gateway.ChatConfig{
		BaseURL:           cfg.Gateway.BaseURL,
		Model:             cfg.Gateway.Model,
		APIKey:            cfg.Gateway.APIKey,
		SystemPrompt:      gateway.SystemPrompt(k),
		Timeout:           time.Duration(cfg.Gateway.TimeoutSeconds) * time.Second,
		RequestsPerMinute: cfg.Gateway.RequestsPerMinute,
		AllowPrivateIP:    cfg.Gateway.AllowPrivateIP,
	})
	return rw, rw.Close, nil
}
