package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PhelGc/furina-latency/internal/evaluator"
)

// ErrOutputPath el archivo de salida no es un .csv
var ErrOutputPath = errors.New("archivo de salida inválido")

// CheckOutputPath valida la extensión antes de hacer cualquier trabajo
func CheckOutputPath(path string) error {
	if filepath.Ext(path) != ".csv" {
		return fmt.Errorf("%w: %q debe terminar en .csv", ErrOutputPath, path)
	}
	return nil
}

// WriteCSV escribe el reporte completo. Se escribe primero a un archivo
// temporal en el mismo directorio y luego se renombra, así un fallo a mitad
// de camino no deja un CSV truncado.
func WriteCSV(path string, evals []evaluator.Evaluation) error {
	if err := CheckOutputPath(path); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".furina-*.csv")
	if err != nil {
		return fmt.Errorf("error creando archivo temporal: %w", err)
	}
	// Si algo falla se borra el temporal; tras el rename no existe y se ignora
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(evaluator.Fields); err != nil {
		tmp.Close()
		return fmt.Errorf("error escribiendo encabezado: %w", err)
	}
	for _, e := range evals {
		if err := w.Write(e.Row()); err != nil {
			tmp.Close()
			return fmt.Errorf("error escribiendo fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("error escribiendo CSV: %w", err)
	}

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("error ajustando permisos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error cerrando archivo temporal: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error moviendo reporte a %s: %w", path, err)
	}
	return nil
}
