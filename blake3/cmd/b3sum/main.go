package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/blake3go/blake3/blake3"
)

var log = logrus.New()

func main() {
	app := cli.NewApp()
	app.Name = "b3sum"
	app.Usage = "compute BLAKE3 digests of files"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log,l",
			Usage: "log level: debug,info,warning,error",
			Value: "info",
		},
	}

	app.Before = func(c *cli.Context) error {
		lv, err := logrus.ParseLevel(c.String("log"))
		if err != nil {
			return err
		}
		log.SetLevel(lv)
		return nil
	}

	app.Commands = []cli.Command{
		{
			Name:  "hash",
			Usage: "hash one or more files with the unkeyed mode",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "length,n", Usage: "output length in bytes", Value: blake3.OutLen},
				cli.BoolFlag{Name: "progress,p", Usage: "report progress to stderr"},
			},
			Action: func(c *cli.Context) error {
				return runHash(c, blake3.New())
			},
		},
		{
			Name:  "keyed",
			Usage: "hash one or more files with a 32-byte hex key",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "key,k", Usage: "32-byte hex-encoded key", Required: true},
				cli.IntFlag{Name: "length,n", Usage: "output length in bytes", Value: blake3.OutLen},
				cli.BoolFlag{Name: "progress,p", Usage: "report progress to stderr"},
			},
			Action: func(c *cli.Context) error {
				key, err := decodeKey(c.String("key"))
				if err != nil {
					return err
				}
				return runHash(c, blake3.NewKeyed(key))
			},
		},
		{
			Name:  "derive-key",
			Usage: "derive key material from a context string and input files",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "context,x", Usage: "application-defined context string", Required: true},
				cli.IntFlag{Name: "length,n", Usage: "output length in bytes", Value: blake3.OutLen},
				cli.BoolFlag{Name: "progress,p", Usage: "report progress to stderr"},
			},
			Action: func(c *cli.Context) error {
				return runHash(c, blake3.NewDeriveKey(c.String("context")))
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("b3sum failed")
	}
}

func decodeKey(hexKey string) ([blake3.KeyLen]byte, error) {
	var key [blake3.KeyLen]byte
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return key, fmt.Errorf("decoding key: %w", err)
	}
	if len(raw) != blake3.KeyLen {
		return key, blake3.ErrInvalidKeyLength
	}
	copy(key[:], raw)
	return key, nil
}

// runHash streams every path in c.Args() (or stdin, if none given) through
// h and prints "<hex digest>  <path>" lines, matching the coreutils
// shasum family's output convention.
func runHash(c *cli.Context, h *blake3.Hasher) error {
	outLen := c.Int("length")
	showProgress := c.Bool("progress")

	paths := c.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	for _, path := range paths {
		h.Reset()

		var onProgress blake3.ProgressFunc
		if showProgress {
			onProgress = func(p blake3.Progress) {
				log.WithFields(logrus.Fields{
					"path":      path,
					"processed": p.Processed,
					"elapsed":   p.Elapsed,
				}).Debug("hashing")
			}
		}

		if err := hashPath(h, path, onProgress); err != nil {
			log.WithError(err).WithField("path", path).Error("hash failed")
			return err
		}

		out, err := h.FinalizeN(outLen)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", hex.EncodeToString(out), path)
	}
	return nil
}

func hashPath(h *blake3.Hasher, path string, onProgress blake3.ProgressFunc) error {
	if path == "-" {
		_, err := h.WriteReader(os.Stdin, nil, 0, onProgress)
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	var total uint64
	if err == nil {
		total = uint64(info.Size())
	}
	_, err = h.WriteReader(f, nil, total, onProgress)
	return err
}
