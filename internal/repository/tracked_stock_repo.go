package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/model"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/common"

	"gorm.io/gorm"
)

type TrackedStockRepository interface {
	Create(ctx context.Context, stock *model.TrackedStock) error
	GetAll(ctx context.Context) ([]model.TrackedStock, error)
	GetBySymbol(ctx context.Context, symbol string) (*model.TrackedStock, error)
	Delete(ctx context.Context, symbol string) error
}

type trackedStockRepository struct {
	db *gorm.DB
}

func NewTrackedStockRepository(db *gorm.DB) TrackedStockRepository {
	return &trackedStockRepository{
		db: db,
	}
}

func (r *trackedStockRepository) Create(ctx context.Context, stock *model.TrackedStock) error {
	stock.Symbol = strings.ToUpper(stock.Symbol)
	if stock.Exchange == "" {
		stock.Exchange = common.EXCHANGE_NASDAQ
	}
	if err := r.db.WithContext(ctx).Create(stock).Error; err != nil {
		return fmt.Errorf("failed to track stock %s: %w", stock.Symbol, err)
	}
	return nil
}

func (r *trackedStockRepository) GetAll(ctx context.Context) ([]model.TrackedStock, error) {
	var stocks []model.TrackedStock
	if err := r.db.WithContext(ctx).Order("symbol asc").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *trackedStockRepository) GetBySymbol(ctx context.Context, symbol string) (*model.TrackedStock, error) {
	var stock model.TrackedStock
	err := r.db.WithContext(ctx).Where("symbol = ?", strings.ToUpper(symbol)).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *trackedStockRepository) Delete(ctx context.Context, symbol string) error {
	result := r.db.WithContext(ctx).Where("symbol = ?", strings.ToUpper(symbol)).Delete(&model.TrackedStock{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("stock %s is not tracked", symbol)
	}
	return nil
}
