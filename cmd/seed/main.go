package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/planning-aidant/backend/internal/config"
	"github.com/planning-aidant/backend/internal/repository"
	"github.com/planning-aidant/backend/internal/seed"
	"github.com/planning-aidant/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	var op int
	var n int
	var fixture string

	flag.IntVar(&op, "op", 0, "opération à exécuter (1: clients aléatoires, 2: employés aléatoires, 3: rendez-vous aléatoires du mois courant, 4: fixture YAML)")
	flag.IntVar(&n, "n", 5, "nombre d'éléments à insérer")
	flag.StringVar(&fixture, "fixture", "", "chemin de la fixture YAML (par défaut SEED_FIXTURE)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossible de charger la configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Error("impossible de créer le pool de connexions", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("impossible de joindre la base de données", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.Migrate(ctx); err != nil {
		logger.Error("impossible de migrer la base de données", "error", err)
		return
	}

	ctx = context.Background()

	switch op {
	case 0:
		slog.Error("aucune opération indiquée")
	case 1:
		if n <= 0 {
			slog.Error("nombre de clients invalide")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			if err := repo.CreateClient(ctx, utils.GenerateRandomClient()); err != nil {
				slog.Error("impossible d'insérer le client", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("clients insérés", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("nombre d'employés invalide")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			if err := repo.CreateEmployee(ctx, utils.GenerateRandomEmployee()); err != nil {
				slog.Error("impossible d'insérer l'employé", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("employés insérés", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("nombre de rendez-vous invalide")
			return
		}
		clients, err := repo.GetAllClients(ctx)
		if err != nil {
			slog.Error("impossible de lire les clients", slog.String("error", err.Error()))
			return
		}
		employees, err := repo.GetAllEmployees(ctx)
		if err != nil {
			slog.Error("impossible de lire les employés", slog.String("error", err.Error()))
			return
		}
		if len(clients) == 0 || len(employees) == 0 {
			slog.Error("il faut au moins un client et un employé")
			return
		}

		now := time.Now()
		cnt := 0
		for i := 0; i < n; i++ {
			c := clients[rand.Intn(len(clients))]
			e := employees[rand.Intn(len(employees))]
			if err := repo.CreateAppointment(ctx, utils.GenerateRandomAppointment(now, c.ID, e.ID)); err != nil {
				slog.Error("impossible d'insérer le rendez-vous", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("rendez-vous insérés", slog.Int("count", cnt))
	case 4:
		if fixture == "" {
			fixture = cfg.Seed.Fixture
		}
		f, err := seed.LoadFixture(fixture)
		if err != nil {
			slog.Error("impossible de lire la fixture", slog.String("error", err.Error()))
			return
		}
		summary, err := seed.Apply(ctx, repo, f, time.Now().Year())
		if err != nil {
			slog.Error("échec de l'import de la fixture", slog.String("error", err.Error()))
			return
		}
		slog.Info("fixture importée",
			slog.Int("clients", summary.Clients),
			slog.Int("employees", summary.Employees),
			slog.Int("appointments", summary.Appointments),
			slog.Int("skipped", summary.Skipped),
		)
	default:
		slog.Error("opération inconnue")
	}
}
