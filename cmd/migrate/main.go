package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JBeggs/fambrifarms-backend-sub000/pkg/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Aplicador de migraciones embebidas. El DSN sale de la configuración
// (DATABASE_URL / DB_*) salvo que se pase -dsn explícito.
func main() {
	var (
		dsn     = flag.String("dsn", "", "connection string de PostgreSQL (default: configuración)")
		up      = flag.Bool("up", false, "aplicar todas las migraciones pendientes")
		down    = flag.Bool("down", false, "revertir todas las migraciones")
		steps   = flag.Int("steps", 0, "número de migraciones (positivo=up, negativo=down)")
		version = flag.Bool("version", false, "imprimir la versión actual")
	)
	flag.Parse()

	if *dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("cargar configuración: %v", err)
		}
		*dsn = cfg.DB.ConnectionString()
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		log.Fatalf("crear fuente de migraciones: %v", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, *dsn)
	if err != nil {
		log.Fatalf("crear migrador: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("obtener versión: %v", err)
		}
		fmt.Printf("versión: %d, dirty: %v\n", v, dirty)
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("aplicar migraciones: %v", err)
		}
		fmt.Println("migraciones aplicadas")
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("revertir migraciones: %v", err)
		}
		fmt.Println("migraciones revertidas")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("aplicar pasos: %v", err)
		}
		fmt.Printf("aplicados %d pasos\n", *steps)
	default:
		fmt.Println("uso: migrate [-dsn <connection-string>] [-up|-down|-steps N|-version]")
		flag.PrintDefaults()
	}
}
