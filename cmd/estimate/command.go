package main

import (
	"context"
	"delivery-emissions-service/internal/bootstrap"
	"delivery-emissions-service/internal/config"
	"delivery-emissions-service/internal/domain"
	"delivery-emissions-service/internal/export"
	"delivery-emissions-service/internal/services"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// builder wires collaborators; swapped out in tests.
type builder func(ctx context.Context) (services.Collaborators, io.Closer, error)

func buildFromEnv(ctx context.Context) (services.Collaborators, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return services.Collaborators{}, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return services.Collaborators{}, nil, err
	}
	stack, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return services.Collaborators{}, nil, err
	}
	return stack.Deps, stack, nil
}

type flags struct {
	from, to                  string
	vehicle, traffic, weather string
	cargo, fuelPrice          float64
	out                       string
}

func (f flags) request() (services.PredictDeliveryRequest, error) {
	vehicle, verr := domain.ParseVehicle(f.vehicle)
	traffic, terr := domain.ParseTrafficLevel(f.traffic)
	weather, werr := domain.ParseWeatherChoice(f.weather)
	if err := errors.Join(verr, terr, werr); err != nil {
		return services.PredictDeliveryRequest{}, err
	}
	return services.PredictDeliveryRequest{
		Start:             f.from,
		End:               f.to,
		Traffic:           traffic,
		Weather:           weather,
		Vehicle:           vehicle,
		CargoWeightKg:     f.cargo,
		FuelPricePerLiter: f.fuelPrice,
	}, nil
}

func newRootCmd(build builder) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate fuel, cost and CO2 for one delivery",
		Long: `Geocodes both places, fetches a driving route and current weather, then
reports the model-predicted and formula-based CO2 for the trip.`,
		Example: `  estimate --from Hyderabad --to Warangal --vehicle Van --cargo 500
  estimate --vehicle truck --traffic high --weather rainy --out delivery_report.csv`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}

			deps, closer, err := build(cmd.Context())
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}

			ledger := domain.NewSessionLedger()
			res, err := services.PredictDelivery(cmd.Context(), req, deps, ledger)
			if err != nil {
				return err
			}

			if err := renderResult(cmd.OutOrStdout(), res); err != nil {
				return err
			}

			if f.out == "" {
				return nil
			}
			return writeReport(f.out, res.Record, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&f.from, "from", services.DefaultStart, "Start location")
	cmd.Flags().StringVar(&f.to, "to", services.DefaultDestination, "Destination")
	cmd.Flags().StringVar(&f.vehicle, "vehicle", domain.Bike.String(), "Vehicle: Bike, Car, Van or Truck")
	cmd.Flags().StringVar(&f.traffic, "traffic", domain.TrafficLow.String(), "Traffic level: Low, Medium or High")
	cmd.Flags().StringVar(&f.weather, "weather", domain.WeatherClear.String(), "Expected weather: Clear or Rainy")
	cmd.Flags().Float64Var(&f.cargo, "cargo", 0, "Cargo weight in kg")
	cmd.Flags().Float64Var(&f.fuelPrice, "fuel-price", services.DefaultFuelPricePerLiter, "Fuel price per liter")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Write the delivery record to this CSV file")

	return cmd
}

func writeReport(path string, rec domain.DeliveryRecord, w io.Writer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := export.WriteRecord(file, rec); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	_, err = fmt.Fprintf(w, "Saved %s\n", path)
	return err
}
