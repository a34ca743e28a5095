package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/export"
	"github.com/davesmith10/tiedye/internal/pattern"
	"github.com/davesmith10/tiedye/internal/pipeline"
	"github.com/davesmith10/tiedye/internal/preview"
	"github.com/davesmith10/tiedye/internal/raster"
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Design a tie-dye pattern interactively",
	Args:  cobra.NoArgs,
	RunE:  runDesign,
}

func init() {
	designCmd.Flags().Int("width", pattern.DefaultWidth, "Image width in pixels")
	designCmd.Flags().Int("height", pattern.DefaultHeight, "Image height in pixels")
	designCmd.Flags().Uint64("seed", 0, "Random seed (default: random)")
	designCmd.Flags().Int("scale", 1, "Integer upscale factor for saved images")
	rootCmd.AddCommand(designCmd)
}

// errInputClosed ends a session whose input ran out mid-prompt.
var errInputClosed = errors.New("input closed before the design was finished")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(msg string) (string, error) {
	fmt.Fprintln(p.out, msg)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func runDesign(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	scale, _ := cmd.Flags().GetInt("scale")
	seed, _ := cmd.Flags().GetUint64("seed")
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}

	p := &prompter{in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}

	p.say("Welcome to the tie-dye designer! Choose the dyes for your pattern.")
	p.say("")
	p.say("Key:")
	for _, n := range dye.Palette {
		p.say("  %s - %s", n.Key, strings.ToLower(n.Name))
	}
	p.say("")

	colors, err := askColors(p)
	if err != nil {
		return err
	}
	mode, err := askPattern(p)
	if err != nil {
		return err
	}
	background, err := askBackground(p, colors)
	if err != nil {
		return err
	}

	designer, err := pipeline.NewDesigner(pipeline.Options{
		Colors:     colors,
		Background: background,
		Pattern:    mode,
		Width:      width,
		Height:     height,
		Seed:       seed,
		Encoder:    export.EncoderOptions{Scale: scale},
	})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"component": "design", "seed": seed}).Debug("designer ready")

	for {
		img, err := designer.Compose()
		if err != nil {
			return err
		}
		if err := preview.Render(p.out, img, preview.DetectOptions()); err != nil {
			return fmt.Errorf("preview: %w", err)
		}

		name, err := p.ask("To save this image, type a file name (.png, .jpg, .bmp, .tif); press enter to skip.")
		if err != nil {
			return err
		}
		if name != "" {
			if err := saveImage(designer, img, name); err != nil {
				p.say("Could not save: %v", err)
			} else {
				p.say("Saved %s.", name)
			}
		}

		again, err := p.ask("Generate another image with the same inputs? Type 'y' for yes and anything else for no.")
		if err != nil {
			return err
		}
		if again != "y" {
			return nil
		}
	}
}

func askColors(p *prompter) ([]dye.Color, error) {
	var colors []dye.Color
	answer, err := p.ask("Choose a color using the key.")
	for err == nil && len(colors) < pipeline.MaxColors {
		if answer == "q" {
			if len(colors) > 0 {
				break
			}
			answer, err = p.ask("Choose at least one color before typing 'q'.")
			continue
		}

		n, ok := dye.Lookup(strings.ToLower(answer))
		switch {
		case !ok:
			answer, err = p.ask("Please type a value in the key or 'q'.")
		case containsColor(colors, n.Color):
			answer, err = p.ask(fmt.Sprintf("%s is already in the design. Choose another color or type 'q' to finish.", n.Name))
		default:
			colors = append(colors, n.Color)
			p.say("You chose %s.", n.Name)
			if len(colors) < pipeline.MaxColors {
				answer, err = p.ask("Choose another color or type 'q' to finish.")
			}
		}
	}
	return colors, err
}

func askPattern(p *prompter) (pattern.Mode, error) {
	answer, err := p.ask("Choose a pattern using the key.\nsplatter - s\nvertical - v\nhorizontal - h")
	for err == nil {
		if len(answer) == 1 {
			if mode, perr := pattern.ParseMode(answer); perr == nil {
				p.say("The pattern will be %s.", mode)
				return mode, nil
			}
		}
		answer, err = p.ask("Please choose a pattern using the key (s, v, or h).")
	}
	return 0, err
}

func askBackground(p *prompter, colors []dye.Color) (dye.Color, error) {
	answer, err := p.ask("The background is currently white. To keep it white, type 'w', or change it with the color key.")
	for err == nil {
		n, ok := dye.Lookup(strings.ToLower(answer))
		switch {
		case !ok:
			answer, err = p.ask("Please type a value in the key or 'w' to choose the background.")
		case containsColor(colors, n.Color):
			answer, err = p.ask(fmt.Sprintf("%s is already a dye. Choose a different background.", n.Name))
		default:
			p.say("The background will be %s. Generating image now.", n.Name)
			return n.Color, nil
		}
	}
	return dye.Color{}, err
}

func containsColor(colors []dye.Color, c dye.Color) bool {
	for _, x := range colors {
		if x == c {
			return true
		}
	}
	return false
}

func saveImage(d *pipeline.Designer, img *raster.Image, name string) error {
	format, err := export.FormatFromPath(name)
	if err != nil {
		return err
	}
	enc := d.Options().Encoder
	enc.Format = format
	data, err := export.Encode(img, enc)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0644)
}
