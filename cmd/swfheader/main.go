package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/svanichkin/swfheader"
)

type rectView struct {
	XMin int32 `json:"x_min" yaml:"x_min"`
	XMax int32 `json:"x_max" yaml:"x_max"`
	YMin int32 `json:"y_min" yaml:"y_min"`
	YMax int32 `json:"y_max" yaml:"y_max"`
}

type headerView struct {
	File       string   `json:"file" yaml:"file"`
	Signature  string   `json:"signature" yaml:"signature"`
	Version    uint8    `json:"version" yaml:"version"`
	FileLength uint32   `json:"file_length" yaml:"file_length"`
	RectTwips  rectView `json:"rect_twips" yaml:"rect_twips"`
	Width      float64  `json:"width" yaml:"width"`
	Height     float64  `json:"height" yaml:"height"`
	FrameRate  float64  `json:"frame_rate" yaml:"frame_rate"`
	FrameCount uint16   `json:"frame_count" yaml:"frame_count"`
	UnpackedTo string   `json:"unpacked_to,omitempty" yaml:"unpacked_to,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("swfheader", flag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("format", "text", "output format: text, json or yaml")
	unpackDir := flags.String("unpack", "", "write an uncompressed (FWS) copy of each input into `dir`")
	verbose := flags.Bool("v", false, "debug logging")
	flags.Usage = func() {
		fmt.Fprint(stderr, "Usage: swfheader [flags] <file.swf>...\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}
	switch *format {
	case "text", "json", "yaml":
	default:
		fmt.Fprintf(stderr, "unknown format %q (want text, json or yaml)\n", *format)
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *unpackDir != "" {
		if err := os.MkdirAll(*unpackDir, 0o755); err != nil {
			log.WithError(err).Error("create unpack directory")
			return 1
		}
	}

	views := make([]headerView, 0, flags.NArg())
	failed := 0
	for _, path := range flags.Args() {
		v, err := inspect(path, *unpackDir, log)
		if err != nil {
			entry := log.WithField("file", path)
			if errors.Is(err, swfheader.ErrNotSWF) {
				entry.Warn("not a swf file")
			} else {
				entry.WithError(err).Warn("cannot read swf header")
			}
			failed++
			continue
		}
		views = append(views, v)
	}

	if err := printHeaders(stdout, *format, views); err != nil {
		log.WithError(err).Error("write output")
		return 1
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func inspect(path, unpackDir string, log *logrus.Logger) (headerView, error) {
	var out string
	if unpackDir != "" {
		out = filepath.Join(unpackDir, filepath.Base(path))
		// Never overwrite: the target may be the input itself or the copy of
		// another input with the same name.
		if _, err := os.Lstat(out); err == nil {
			return headerView{}, errors.Errorf("unpack target %s already exists", out)
		} else if !os.IsNotExist(err) {
			return headerView{}, err
		}
	}

	h, s, err := swfheader.Open(path)
	if err != nil {
		return headerView{}, err
	}
	defer s.Close()

	r := h.Rect()
	w, ht := h.Dimensions()
	v := headerView{
		File:       path,
		Signature:  h.Signature().String(),
		Version:    h.Version(),
		FileLength: h.FileLength(),
		RectTwips:  rectView{XMin: r.XMin, XMax: r.XMax, YMin: r.YMin, YMax: r.YMax},
		Width:      w,
		Height:     ht,
		FrameRate:  h.FrameRate(),
		FrameCount: h.FrameCount(),
	}
	log.WithFields(logrus.Fields{
		"file":      path,
		"signature": v.Signature,
		"rect_bits": h.RectBits(),
	}).Debug("header decoded")

	if unpackDir == "" {
		return v, nil
	}

	if err := unpackTo(out, h, s); err != nil {
		return headerView{}, errors.Wrapf(err, "unpack to %s", out)
	}
	log.WithField("file", path).WithField("out", out).Debug("unpacked")
	v.UnpackedTo = out
	return v, nil
}

// unpackTo writes the FWS copy to a temporary file next to path and renames
// it into place once complete.
func unpackTo(path string, h swfheader.Header, body io.Reader) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".swfheader-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := swfheader.Unpack(f, h, body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func printHeaders(w io.Writer, format string, views []headerView) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, v := range views {
		_, err := fmt.Fprintf(w, "%s\n"+
			"  signature:   %s\n"+
			"  version:     %d\n"+
			"  file length: %d\n"+
			"  frame size:  %g x %g px (%d..%d, %d..%d twips)\n"+
			"  frame rate:  %g\n"+
			"  frame count: %d\n",
			v.File, v.Signature, v.Version, v.FileLength,
			v.Width, v.Height, v.RectTwips.XMin, v.RectTwips.XMax, v.RectTwips.YMin, v.RectTwips.YMax,
			v.FrameRate, v.FrameCount)
		if err != nil {
			return err
		}
		if v.UnpackedTo != "" {
			if _, err := fmt.Fprintf(w, "  unpacked:    %s\n", v.UnpackedTo); err != nil {
				return err
			}
		}
	}
	return nil
}
