package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/suplementor-backend/internal/domain/profile"
	"github.com/yungbote/suplementor-backend/internal/services"
)

type profileFlags struct {
	file       string
	age        int
	gender     string
	goals      []string
	experience string
	meds       []string
	conditions []string
	language   string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "profile", "", "YAML file holding a user profile; flags below override it")
	cmd.Flags().IntVar(&f.age, "age", 0, "user age")
	cmd.Flags().StringVar(&f.gender, "gender", "", "male, female or other")
	cmd.Flags().StringSliceVar(&f.goals, "goal", nil, "health goal, repeatable (e.g. memory_improvement)")
	cmd.Flags().StringVar(&f.experience, "experience", "", "beginner, intermediate or advanced")
	cmd.Flags().StringSliceVar(&f.meds, "medication", nil, "current medication, repeatable")
	cmd.Flags().StringSliceVar(&f.conditions, "condition", nil, "existing condition, repeatable")
	cmd.Flags().StringVar(&f.language, "lang", services.LanguageEN, "response language (en or pl)")
}

func (f *profileFlags) profile() (profile.UserProfile, error) {
	var p profile.UserProfile
	if f.file != "" {
		raw, err := os.ReadFile(f.file)
		if err != nil {
			return p, fmt.Errorf("read profile: %w", err)
		}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return p, fmt.Errorf("parse profile %s: %w", f.file, err)
		}
	}
	if f.age > 0 {
		p.Age = f.age
	}
	if f.gender != "" {
		p.Gender = profile.Gender(strings.ToLower(f.gender))
	}
	if len(f.goals) > 0 {
		p.HealthGoals = p.HealthGoals[:0]
		for _, g := range f.goals {
			p.HealthGoals = append(p.HealthGoals, profile.Goal(strings.ToLower(strings.TrimSpace(g))))
		}
	}
	if f.experience != "" {
		p.ExperienceLevel = profile.ExperienceLevel(strings.ToLower(f.experience))
	}
	if len(f.meds) > 0 {
		p.CurrentMedications = f.meds
	}
	if len(f.conditions) > 0 {
		p.ExistingConditions = f.conditions
	}
	return p, nil
}

func newRecommendCmd() *cobra.Command {
	var (
		flags profileFlags
		limit int
	)
	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Rank catalog supplements for a user profile",
		Example: `  suplementorctl recommend --age 30 --goal memory_improvement --goal focus_concentration
  suplementorctl recommend --profile profile.yaml --lang pl --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := flags.profile()
			if err != nil {
				return err
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.Services.Recommendation.Recommend(cmd.Context(), p, limit, flags.language)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (0 uses the configured default)")
	return cmd
}

func newStackCmd() *cobra.Command {
	var (
		flags  profileFlags
		size   int
		budget float64
	)
	cmd := &cobra.Command{
		Use:   "stack",
		Short: "Build a supplement stack for a user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := flags.profile()
			if err != nil {
				return err
			}
			req := services.StackRequest{MaxSupplements: size, Language: flags.language}
			if cmd.Flags().Changed("budget") {
				req.BudgetLimit = &budget
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			stack, err := a.Services.Recommendation.BuildStack(cmd.Context(), p, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stack)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&size, "size", 0, "maximum stack size (0 uses the default)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "monthly budget limit; unlimited when unset")
	return cmd
}

func newGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals SYMPTOM...",
		Short: "Suggest health goals for free-text symptoms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd.OutOrStdout(), a.Services.Recommendation.SuggestGoals(cmd.Context(), args))
		},
	}
}
