// seed_companies genera un script SQL para poblar el dataset de un benchmark a
// partir de un CSV exportado (Excel suele guardarlo en Windows-1252).
//
// Uso: go run ./cmd/seed_companies <benchmark-id> <archivo.csv> [--encoding latin1] [--map name=Empresa]
// Escribe: migrations/seed_<benchmark>.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		encoding string
		mapFlags []string
		outPath  string
		comma    string
	)
	cmd := &cobra.Command{
		Use:   "seed_companies <benchmark-id> <archivo.csv>",
		Short: "Genera INSERTs idempotentes de empresas desde un CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			benchmarkID, csvPath := args[0], args[1]
			if len(comma) != 1 {
				return fmt.Errorf("--comma debe ser un solo carácter")
			}

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			reader, err := decodeReader(f, encoding)
			if err != nil {
				return err
			}
			rows, headers, err := readRows(reader, rune(comma[0]))
			if err != nil {
				return err
			}
			mapping, err := buildMapping(headers, mapFlags)
			if err != nil {
				return err
			}
			companies, skipped := toCompanies(mapping, rows)

			if outPath == "" {
				outPath = filepath.Join(findModuleRoot(), "migrations", "seed_"+benchmarkID+".sql")
			}
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("crear archivo: %w", err)
			}
			defer out.Close()

			if err := writeSQL(out, benchmarkID, companies); err != nil {
				return err
			}
			cmd.Printf("Generado %s: %d empresas, %d filas omitidas\n", outPath, len(companies), skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "windows-1252", "codificación del CSV: utf-8, latin1, windows-1252")
	cmd.Flags().StringArrayVar(&mapFlags, "map", nil, "mapeo campo=encabezado (repetible); por defecto se detecta por nombre")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "ruta del SQL de salida")
	cmd.Flags().StringVar(&comma, "comma", ",", "separador de columnas")
	return cmd
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
