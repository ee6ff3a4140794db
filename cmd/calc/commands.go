// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zetaloop/DSProject2-Calculator/internal/input"
	"github.com/zetaloop/DSProject2-Calculator/internal/scanner"
	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/pkg/calc"
)

// parseExpression scans typed text into a buffer with the cursor at the end.
func parseExpression(args []string) (calc.Buffer, error) {
	labels, err := scanner.Labels(strings.Join(args, " "))
	if err != nil {
		return calc.Buffer{}, err
	}
	return calc.ParseLabels(labels), nil
}

func newEvalCmd(a *app) *cobra.Command {
	var (
		scientific bool
		fraction   bool
		base       string
		angle      string
	)
	cmd := &cobra.Command{
		Use:   "eval EXPRESSION",
		Short: "Evaluate an expression once",
		Example: `  calc eval "2sin(30)+4!" --angle Deg
  calc eval 255 --base Hex
  calc eval 0.75 --fraction`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := parseExpression(args)
			if err != nil {
				return err
			}

			st := calc.NewState()
			st.Angle = a.cfg.Angle()
			if angle != "" {
				v, ok := session.ParseAngle(angle)
				if !ok {
					return fmt.Errorf("unknown angle unit %q", angle)
				}
				st.Angle = v
			}
			if base != "" {
				v, ok := session.ParseBase(base)
				if !ok {
					return fmt.Errorf("unknown number base %q", base)
				}
				st.SetBase(v)
			}
			if fraction {
				st.SetFraction(true)
			}
			if scientific {
				st.SetScientific(true)
			}

			e, err := calc.New(calc.WithConfig(a.cfg), calc.WithLogger(a.logger), calc.WithMemoryStore())
			if err != nil {
				return err
			}
			defer e.Close()

			display, result := e.Evaluate(buf, st)
			fmt.Fprintln(cmd.OutOrStdout(), display)
			if result == nil {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&scientific, "scientific", false, "Scientific notation")
	cmd.Flags().BoolVar(&fraction, "fraction", false, "Show as a fraction")
	cmd.Flags().StringVar(&base, "base", "", "Number base: Dec, Bin, Oct, Hex")
	cmd.Flags().StringVar(&angle, "angle", "", "Angle unit: Rad, Deg, Hyp (default from config)")
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render EXPRESSION",
		Short: "Print the normalised infix form of an expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := parseExpression(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), calc.Render(buf))
			return nil
		},
	}
}

func newKeysCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List special keys and composite key expansions",
		Long: `List special keys and composite key expansions.

With --yaml the composite keys are printed in the form the keymap section
of the config file accepts, ready to copy and edit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := calc.New(calc.WithConfig(a.cfg), calc.WithLogger(a.logger), calc.WithMemoryStore())
			if err != nil {
				return err
			}
			defer e.Close()

			w := cmd.OutOrStdout()
			km := e.Keymap()
			if asYAML {
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(km); err != nil {
					return fmt.Errorf("encode keymap: %w", err)
				}
				return enc.Close()
			}

			fmt.Fprintln(w, "Special keys:")
			fmt.Fprintf(w, "  %s\n", strings.Join(input.SpecialKeys, " "))
			fmt.Fprintln(w, "Composite keys:")
			for _, key := range km.Keys() {
				fmt.Fprintf(w, "  %-8s %s\n", key, strings.Join(km.Expand(key), " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print composite keys as YAML")
	return cmd
}

func newPressCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "press KEY...",
		Short: "Press keys in a saved session and print the display",
		Example: `  calc press 3 + 4 =
  calc press x^2 --session 6f1c...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := e.Resume(a.sessionID)
			if err != nil {
				return err
			}

			var resp calc.Response
			for _, key := range args {
				if resp, err = e.Press(id, key); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetEscapeHTML(false)
				return enc.Encode(resp)
			}
			fmt.Fprintln(w, strings.Join(resp.Expression, " "))
			fmt.Fprintln(w, resp.Display)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the response as JSON")
	return cmd
}

func newSessionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			defer e.Close()

			ids, err := e.Sessions()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}
