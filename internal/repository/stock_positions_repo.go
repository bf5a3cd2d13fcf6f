package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/model"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/utils"

	"gorm.io/gorm"
)

type StockPositionsRepository interface {
	Create(ctx context.Context, position *model.StockPosition) error
	Get(ctx context.Context, param model.GetStockPositionsParam) ([]model.StockPosition, error)
	GetByID(ctx context.Context, id uint) (*model.StockPosition, error)
	Update(ctx context.Context, position *model.StockPosition, opts ...utils.DBOption) error
}

type stockPositionsRepository struct {
	db *gorm.DB
}

func NewStockPositionsRepository(db *gorm.DB) StockPositionsRepository {
	return &stockPositionsRepository{
		db: db,
	}
}

func (r *stockPositionsRepository) Create(ctx context.Context, position *model.StockPosition) error {
	position.Symbol = strings.ToUpper(position.Symbol)
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *stockPositionsRepository) Get(ctx context.Context, param model.GetStockPositionsParam) ([]model.StockPosition, error) {
	var positions []model.StockPosition

	qFilter := []string{}
	qFilterParam := []interface{}{}

	if len(param.IDs) > 0 {
		qFilter = append(qFilter, "id IN (?)")
		qFilterParam = append(qFilterParam, param.IDs)
	}

	if len(param.Symbols) > 0 {
		qFilter = append(qFilter, "symbol IN (?)")
		qFilterParam = append(qFilterParam, param.Symbols)
	}

	if param.IsActive != nil {
		qFilter = append(qFilter, "is_active = ?")
		qFilterParam = append(qFilterParam, *param.IsActive)
	}

	query := r.db.WithContext(ctx)
	if len(qFilter) > 0 {
		query = query.Where(strings.Join(qFilter, " AND "), qFilterParam...)
	}

	if err := query.Order("opened_at desc").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (r *stockPositionsRepository) GetByID(ctx context.Context, id uint) (*model.StockPosition, error) {
	var position model.StockPosition
	err := r.db.WithContext(ctx).First(&position, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &position, nil
}

func (r *stockPositionsRepository) Update(ctx context.Context, position *model.StockPosition, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Updates(position).Error
}
