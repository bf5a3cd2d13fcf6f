package repository

import (
	"context"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/model"
	"github.com/Charvi99/StockAnalyzer-sub001/pkg/utils"

	"gorm.io/gorm"
)

type PositionMonitoringRepository interface {
	Create(ctx context.Context, monitoring *model.PositionMonitoring) error
	Get(ctx context.Context, param model.PositionMonitoringQueryParam) ([]model.PositionMonitoring, error)
}

type positionMonitoringRepository struct {
	db *gorm.DB
}

func NewPositionMonitoringRepository(db *gorm.DB) PositionMonitoringRepository {
	return &positionMonitoringRepository{
		db: db,
	}
}

func (r *positionMonitoringRepository) Create(ctx context.Context, monitoring *model.PositionMonitoring) error {
	return r.db.WithContext(ctx).Create(monitoring).Error
}

func (r *positionMonitoringRepository) Get(ctx context.Context, param model.PositionMonitoringQueryParam) ([]model.PositionMonitoring, error) {
	var rows []model.PositionMonitoring

	opts := []utils.DBOption{
		utils.WithWhere("stock_position_id = ?", param.StockPositionID),
		utils.WithOrder("timestamp desc"),
	}
	if param.Limit != nil {
		opts = append(opts, utils.WithLimit(*param.Limit))
	}

	query := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
