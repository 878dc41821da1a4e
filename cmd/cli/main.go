package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/persuasion-engine/internal/catalog"
	"github.com/persuasion-engine/internal/config"
	"github.com/persuasion-engine/internal/engine"
	"github.com/persuasion-engine/internal/models"
	"github.com/persuasion-engine/internal/source"
	"github.com/persuasion-engine/internal/source/prompts"
	"github.com/persuasion-engine/internal/source/rss"
	"github.com/persuasion-engine/internal/storage"
	"github.com/persuasion-engine/internal/storage/sqlite"
	"github.com/persuasion-engine/pkg/logger"
	"github.com/persuasion-engine/pkg/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "persuasion",
		Short: "Template-driven social media content generator",
		Long: `Generates LinkedIn and Instagram posts from a topic using a fixed
matrix of persuasion templates, and browses the Persuasion Lab catalog.`,
		SilenceUsage:      true,
		PersistentPreRunE: initializeApp,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(templatesCmd())
	rootCmd.AddCommand(patternsCmd())
	rootCmd.AddCommand(triggersCmd())
	rootCmd.AddCommand(labCmd())
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(topicsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initializeApp(cmd *cobra.Command, args []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	return nil
}

// openRepo opens the preset store; only commands that use presets touch the database
func openRepo() (storage.Repository, error) {
	repo, err := sqlite.New(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := repo.Migrate(); err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return repo, nil
}

// requestFlags holds the configuration axes shared by generate and presets save
type requestFlags struct {
	platform        string
	culturalContext string
	persuasionLevel string
	targetEmotion   string
	contentType     string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.platform, "platform", "p", "", "linkedin or instagram")
	cmd.Flags().StringVar(&f.culturalContext, "cultural", "", "indian, global or hybrid")
	cmd.Flags().StringVarP(&f.persuasionLevel, "level", "l", "", "subtle, moderate or aggressive")
	cmd.Flags().StringVar(&f.targetEmotion, "emotion", "", "curiosity, desire, authority, exclusivity or urgency")
	cmd.Flags().StringVar(&f.contentType, "type", "", "educational, story, insight, revelation or challenge")
}

// apply overrides the fields of req whose flag was set
func (f *requestFlags) apply(req models.ContentRequest) models.ContentRequest {
	if f.platform != "" {
		req.Platform = models.Platform(f.platform)
	}
	if f.culturalContext != "" {
		req.CulturalContext = models.CulturalContext(f.culturalContext)
	}
	if f.persuasionLevel != "" {
		req.PersuasionLevel = models.PersuasionLevel(f.persuasionLevel)
	}
	if f.targetEmotion != "" {
		req.TargetEmotion = models.TargetEmotion(f.targetEmotion)
	}
	if f.contentType != "" {
		req.ContentType = models.ContentType(f.contentType)
	}
	return req
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ============ GENERATE COMMAND ============

func generateCmd() *cobra.Command {
	var (
		flags      requestFlags
		presetName string
		strict     bool
		delay      time.Duration
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate content for a topic",
		Example: `  persuasion generate "AI transformation in Indian fintech"
  persuasion generate -p instagram -l aggressive "Building authentic personal brand"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := strings.Join(args, " ")
			req := cfg.Defaults.DefaultRequest(topic)

			if presetName != "" {
				repo, err := openRepo()
				if err != nil {
					return err
				}
				defer repo.Close()

				preset, err := repo.GetPreset(cmd.Context(), presetName)
				if err != nil {
					return err
				}
				req = preset.Request(topic)
			}
			req = flags.apply(req)

			opts := []engine.Option{engine.WithLogger(log)}
			if strict || cfg.Engine.StrictSanitize {
				opts = append(opts, engine.WithSanitizer(engine.StrictSanitizer{}))
			}

			content, err := engine.New(opts...).Generate(topic, req)
			if err != nil {
				var verr *engine.ValidationError
				if errors.As(err, &verr) {
					for _, f := range verr.Fields {
						fmt.Fprintf(os.Stderr, "  - %s\n", f)
					}
				}
				return err
			}

			if delay > 0 {
				fmt.Fprintf(os.Stderr, "Synthesizing...\n")
				select {
				case <-time.After(delay):
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				}
			}

			if asJSON {
				return printJSON(content)
			}
			printContent(content)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&presetName, "preset", "", "load the configuration from a saved preset")
	cmd.Flags().BoolVar(&strict, "strict", false, "sanitize the topic before interpolation")
	cmd.Flags().DurationVar(&delay, "delay", 0, "simulated synthesis delay, e.g. 4s")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func printContent(c models.GeneratedContent) {
	fmt.Printf("\n=== Generated Content ===\n")
	fmt.Printf("ID:          %s\n", c.ID)
	fmt.Printf("Platform:    %s\n", c.Platform)
	fmt.Printf("Viral score: %d\n", c.ViralScore)
	fmt.Printf("CTA:         %s\n", c.CTAType)
	fmt.Printf("Created:     %s\n", c.CreatedAt.Format(time.RFC1123))

	fmt.Printf("\n--- Content ---\n%s\n", c.Content)

	fmt.Printf("\n--- Hooks ---\n")
	for _, h := range c.Hooks {
		fmt.Printf("  - %s\n", h)
	}
	fmt.Printf("\n--- Techniques ---\n")
	for _, t := range c.PersuasionTechniques {
		fmt.Printf("  - %s\n", t)
	}
	fmt.Printf("\nEmojis: %s\n", strings.Join(c.Emojis, " "))

	fmt.Printf("\n--- Visual assets ---\n")
	for _, a := range c.VisualAssets {
		fmt.Printf("  [%s] %s\n", a.Type, a.Description)
		fmt.Printf("    Trigger: %s\n", a.PsychologyTrigger)
	}
}

// ============ TEMPLATE COMMANDS ============

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect the template matrix",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every platform and persuasion level combination",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := engine.DefaultRegistry()
			keys := registry.Keys()

			fmt.Printf("\n=== Templates (%d) ===\n\n", len(keys))
			for _, k := range keys {
				tpl, err := registry.Lookup(k.Platform, k.PersuasionLevel)
				if err != nil {
					return err
				}
				first, _, _ := strings.Cut(tpl.Text, "\n")
				fmt.Printf("%-22s %s\n", k, first)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <platform> <level>",
		Short: "Print one template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := engine.DefaultRegistry().Lookup(models.Platform(args[0]), models.PersuasionLevel(args[1]))
			if err != nil {
				return err
			}
			fmt.Printf("=== %s ===\n\n%s\n", tpl.Key, tpl.Text)
			return nil
		},
	})

	return cmd
}

// ============ LAB COMMANDS ============

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Persuasion pattern catalog",
	}

	var platform string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List persuasion patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := catalog.Default().Patterns(models.Platform(platform))

			fmt.Printf("\n=== Patterns (%d) ===\n\n", len(patterns))
			for _, p := range patterns {
				fmt.Printf("%s | %d%% | %s\n", p.Name, p.Effectiveness, p.Platform)
				fmt.Printf("    %s\n", p.Description)
				fmt.Printf("    Principle: %s\n\n", p.PsychologyPrinciple)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&platform, "platform", "", "only patterns usable on this platform")

	cmd.AddCommand(listCmd)
	return cmd
}

func triggersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triggers",
		Short: "Psychology trigger catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List psychology triggers",
		RunE: func(cmd *cobra.Command, args []string) error {
			triggers := catalog.Default().Triggers()

			fmt.Printf("\n=== Triggers (%d) ===\n\n", len(triggers))
			for _, t := range triggers {
				fmt.Printf("%s: %s\n", t.Name, t.Description)
				for _, ex := range t.Examples {
					fmt.Printf("    \"%s\"\n", ex)
				}
				fmt.Println()
			}
			return nil
		},
	})

	return cmd
}

func labCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Persuasion Lab panels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "analytics",
		Short: "Show the illustrative analytics panels",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.Default()

			fmt.Printf("\n=== Lab analytics (illustrative) ===\n\n")
			for _, m := range c.Analytics() {
				fmt.Printf("%-22s %-8s %-8s %s\n", m.Metric, m.Value, m.Change, m.Description)
			}
			fmt.Printf("\n--- Funnel ---\n")
			for _, f := range c.Funnel() {
				fmt.Printf("%-14s %-6s %s\n", f.Stage, f.Rate, f.Description)
			}
			return nil
		},
	})

	return cmd
}

// ============ PRESET COMMANDS ============

func presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Saved request configurations",
	}

	cmd.AddCommand(presetsSaveCmd())
	cmd.AddCommand(presetsListCmd())
	cmd.AddCommand(presetsShowCmd())
	cmd.AddCommand(presetsDeleteCmd())
	return cmd
}

func presetsSaveCmd() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a configuration under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := flags.apply(cfg.Defaults.DefaultRequest("preset"))
			if _, err := engine.NewValidator().Validate(req); err != nil {
				return err
			}

			repo, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			preset := models.PresetFromRequest(args[0], req)
			if err := repo.SavePreset(cmd.Context(), preset); err != nil {
				return fmt.Errorf("failed to save preset: %w", err)
			}

			fmt.Printf("Preset %q saved\n", preset.Name)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func presetsListCmd() *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			filter := storage.DefaultPresetFilter()
			if platform != "" {
				p := models.Platform(platform)
				filter.Platform = &p
			}

			presets, err := repo.ListPresets(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to list presets: %w", err)
			}

			if len(presets) == 0 {
				fmt.Println("No presets saved")
				return nil
			}

			fmt.Printf("\n=== Presets (%d) ===\n\n", len(presets))
			for _, p := range presets {
				printPreset(p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "filter by platform")
	return cmd
}

func presetsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			p, err := repo.GetPreset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printPreset(p)
			return nil
		},
	}
}

func presetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.DeletePreset(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Preset %q deleted\n", args[0])
			return nil
		},
	}
}

func printPreset(p *models.Preset) {
	fmt.Printf("[%s] %s/%s\n", p.Name, p.Platform, p.PersuasionLevel)
	fmt.Printf("    Cultural: %s | Emotion: %s | Type: %s\n", p.CulturalContext, p.TargetEmotion, p.ContentType)
	fmt.Printf("    Updated: %s\n\n", p.UpdatedAt.Format(time.RFC1123))
}

// ============ TOPIC COMMANDS ============

func topicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "Topic suggestions",
	}

	var withRSS bool
	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "List topic ideas from quick prompts and RSS feeds",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			manager := source.NewManager()
			manager.Register(prompts.New(cfg.Sources.QuickPrompts, log))
			if withRSS || cfg.Sources.RSS.Enabled {
				limiter := ratelimit.NewDefaultLimiter()
				for _, src := range rss.NewMultiple(cfg.Sources.RSS, limiter, log) {
					manager.Register(src)
				}
			}

			topics, errs := manager.FetchAll(ctx)

			fmt.Printf("\n=== Topic suggestions (%d) ===\n\n", len(topics))
			for i, t := range topics {
				fmt.Printf("[%d] %s\n", i+1, t.Title)
				fmt.Printf("    Source: %s/%s\n", t.SourceType, t.SourceName)
				if t.URL != "" {
					fmt.Printf("    URL: %s\n", t.URL)
				}
			}

			if len(errs) > 0 {
				fmt.Printf("\nErrors:\n")
				for _, e := range errs {
					fmt.Printf("  - %s\n", e)
				}
			}
			return nil
		},
	}
	suggestCmd.Flags().BoolVar(&withRSS, "rss", false, "include configured RSS feeds even when disabled")

	cmd.AddCommand(suggestCmd)
	return cmd
}
