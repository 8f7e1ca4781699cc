package price

import (
	"github.com/light-bringer/price-resolver/internal/app/price/domain"
)

func fieldsToCommand(f *PriceFields) domain.PriceCommand {
	if f == nil {
		return domain.PriceCommand{}
	}
	return domain.PriceCommand{
		BrandID:      f.BrandID,
		ProductID:    f.ProductID,
		StartDate:    f.StartDate,
		EndDate:      f.EndDate,
		PriceList:    f.PriceList,
		Price:        f.Price,
		CurrencyCode: f.Currency,
	}
}

func domainToReply(p *domain.Price) *PriceReply {
	return &PriceReply{Price: &Price{
		PriceID:   p.ID(),
		BrandID:   p.BrandID(),
		ProductID: p.ProductID(),
		PriceList: p.PriceList(),
		StartDate: p.StartDate(),
		EndDate:   p.EndDate(),
		Price:     p.Amount(),
		Currency:  p.Currency().Code(),
	}}
}
