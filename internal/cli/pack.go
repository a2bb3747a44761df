package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"boxwright/pkg/images"
)

func newPackCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pack <image>",
		Short: "Convert an image into the pixel dump format",
		Long:  `Pack decodes a PNG, JPEG, GIF, BMP or WebP image and writes it as a pixel dump (.pxd), which image widgets load without decompression.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: image name with .pxd)")
	return cmd
}

func runPack(ctx context.Context, src, output string) (err error) {
	img, err := images.NewCache("").Load(src)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", src, err)
	}
	if output == "" {
		output = strings.TrimSuffix(src, filepath.Ext(src)) + ".pxd"
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := images.EncodePixelDump(f, img); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	b := img.Bounds()
	loggerFromContext(ctx).Info("packed", "image", src, "output", output, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
	return nil
}
