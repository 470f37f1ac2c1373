package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/spf13/cobra"

	"github.com/rahilshah3105/code-line-formatter/toolkit"
)

func (a *app) catalog(ctx context.Context) (*toolkit.Catalog, error) {
	exec, history, err := a.executor(0)
	if err != nil {
		return nil, err
	}
	codec, err := a.codec("")
	if err != nil {
		return nil, err
	}
	return toolkit.NewCatalog(ctx, toolkit.Builtins(toolkit.BuiltinOptions{
		Executor: exec,
		History:  history,
		Codec:    codec,
	}))
}

func newToolsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List, search and call the built-in tools",
	}
	cmd.AddCommand(newToolsListCmd(a), newToolsSearchCmd(a), newToolsDescribeCmd(a), newToolsCallCmd(a))
	return cmd
}

func newToolsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			for _, tool := range c.Tools() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", toolkit.ToolID(tool), tool.Title); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newToolsSearchCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search tools by name, description and tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			results, err := c.Search(strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				_, err := fmt.Fprintln(out, "no tools found")
				return err
			}
			for _, r := range results {
				if _, err := fmt.Fprintf(out, "%-24s %s\n", r.ID, r.ShortDescription); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum results")
	return cmd
}

func newToolsDescribeCmd(a *app) *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "describe <id>",
		Short: "Show a tool's documentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			level := tooldoc.DetailSummary
			if full {
				level = tooldoc.DetailFull
			}
			doc, err := c.Describe(args[0], level)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n  %s\n", args[0], doc.Summary)
			if full && doc.Notes != "" {
				fmt.Fprintf(out, "\nNotes:\n  %s\n", doc.Notes)
			}
			if full && doc.Tool != nil {
				schema, err := json.MarshalIndent(doc.Tool.InputSchema, "  ", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nInput schema:\n  %s\n", schema)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include notes and the input schema")
	return cmd
}

func newToolsCallCmd(a *app) *cobra.Command {
	var rawArgs string
	cmd := &cobra.Command{
		Use:   "call <id>",
		Short: "Call a tool with JSON arguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var callArgs map[string]any
			if rawArgs != "" {
				if err := json.Unmarshal([]byte(rawArgs), &callArgs); err != nil {
					return fmt.Errorf("%w: %w", toolkit.ErrInvalidArgs, err)
				}
			}
			c, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			result, err := c.Call(cmd.Context(), args[0], callArgs)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "", `tool arguments as a JSON object, e.g. '{"text":"a\nb"}'`)
	return cmd
}
