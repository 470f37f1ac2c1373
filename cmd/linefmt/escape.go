package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rahilshah3105/code-line-formatter/linecodec"
)

type transformOptions struct {
	mode        string
	text        string
	keepNewline bool
}

func newEscapeCmd(a *app) *cobra.Command {
	return newTransformCmd(a, "escape", "Collapse text into one escaped line", linecodec.Codec.Escape)
}

func newUnescapeCmd(a *app) *cobra.Command {
	return newTransformCmd(a, "unescape", "Expand an escaped line back into text", linecodec.Codec.Unescape)
}

func newTransformCmd(a *app, use, short string, fn func(linecodec.Codec, string) string) *cobra.Command {
	opts := &transformOptions{}
	cmd := &cobra.Command{
		Use:   use + " [file|-]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("text") && len(args) > 0 {
				return fmt.Errorf("--text and a file argument cannot be used together")
			}
			codec, err := a.codec(opts.mode)
			if err != nil {
				return err
			}

			text := opts.text
			if !cmd.Flags().Changed("text") {
				path := ""
				if len(args) > 0 {
					path = args[0]
				}
				if _, text, err = input(cmd, path); err != nil {
					return err
				}
				if !opts.keepNewline {
					text = trimNewline(text)
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), fn(codec, text))
			return err
		},
	}
	cmd.Flags().StringVar(&opts.mode, "mode", "", "codec mode (json|legacy); defaults to the config file")
	cmd.Flags().StringVar(&opts.text, "text", "", "transform this text instead of reading input")
	cmd.Flags().BoolVar(&opts.keepNewline, "keep-newline", false, "keep the final newline of file or stdin input")
	return cmd
}

// trimNewline drops one trailing line ending.
func trimNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}
