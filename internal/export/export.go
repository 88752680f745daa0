// Package export writes sales reports as Parquet files, locally or to
// cloud object storage.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"restopos/internal/cloudwriter"
	"restopos/internal/logger"
	"restopos/internal/models"
	"restopos/internal/repositories"
)

// SalesRow is one order flattened for analytics. Money lands as DOUBLE in
// major units so downstream tools need no minor-unit convention.
type SalesRow struct {
	OrderID      string  `parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderNumber  string  `parquet:"name=orderNumber,type=BYTE_ARRAY,convertedtype=UTF8"`
	RestaurantID string  `parquet:"name=restaurantId,type=BYTE_ARRAY,convertedtype=UTF8"`
	OrderType    string  `parquet:"name=orderType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Status       string  `parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
	BasePrice    float64 `parquet:"name=basePrice,type=DOUBLE"`
	Total        float64 `parquet:"name=total,type=DOUBLE"`
	Savings      float64 `parquet:"name=savings,type=DOUBLE"`
	ItemCount    int32   `parquet:"name=itemCount,type=INT32"`
	CreatedAt    int64   `parquet:"name=createdAt,type=INT64"`
}

type Exporter struct {
	orders  repositories.OrderRepository
	cfg     models.ExportConfig
	factory cloudwriter.CloudWriterFactory
	log     *logger.Logger
}

func NewExporter(ctx context.Context, orders repositories.OrderRepository, cfg models.ExportConfig, log *logger.Logger) (*Exporter, error) {
	e := &Exporter{orders: orders, cfg: cfg, log: log}

	if cfg.Destination != "local" {
		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			e.factory = factory
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
	}

	return e, nil
}

// Export writes every order created in [from, to) into one Parquet file
// partitioned by the report date. Returns the number of rows written.
func (e *Exporter) Export(ctx context.Context, from, to time.Time) (int, error) {
	orders, err := e.orders.ListBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to load orders: %w", err)
	}

	partition := fmt.Sprintf("year=%d/month=%02d/day=%02d", from.Year(), from.Month(), from.Day())
	objectPath := filepath.Join(e.cfg.OutputFolder, "sales", partition, "data.parquet")

	fw, err := e.openFile(ctx, objectPath)
	if err != nil {
		return 0, err
	}

	pw, err := writer.NewParquetWriter(fw, new(SalesRow), 4)
	if err != nil {
		fw.Close()
		return 0, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	bar := progressbar.Default(int64(len(orders)), "exporting sales")
	for _, order := range orders {
		if err := pw.Write(toSalesRow(order)); err != nil {
			pw.WriteStop()
			fw.Close()
			return 0, fmt.Errorf("failed to write row for order %s: %w", order.ID, err)
		}
		bar.Add(1)
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return 0, fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return 0, fmt.Errorf("failed to close output: %w", err)
	}

	e.log.Info("sales report written", "rows", len(orders), "path", objectPath)
	return len(orders), nil
}

func (e *Exporter) openFile(ctx context.Context, objectPath string) (source.ParquetFile, error) {
	if e.factory != nil {
		cw, err := e.factory.NewWriter(ctx, e.cfg.CloudStorage.BucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cw), nil
	}

	filePath := filepath.Join(e.cfg.OutputPath, objectPath)
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, nil
}

func toSalesRow(o *models.Order) SalesRow {
	return SalesRow{
		OrderID:      o.ID,
		OrderNumber:  o.Number,
		RestaurantID: o.RestaurantID,
		OrderType:    string(o.Type),
		Status:       o.Status,
		BasePrice:    o.BasePrice.Float(),
		Total:        o.Total.Float(),
		Savings:      o.Savings.Float(),
		ItemCount:    int32(len(o.Items)),
		CreatedAt:    o.CreatedAt.Unix(),
	}
}
