package commands

import (
	"context"

	"dispatch/internal/core/domain/model/earning"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// accrueEarnings splits a paid order between the courier (delivery fee) and
// the merchant (total minus fee) inside the caller's transaction. Called
// from both the lifecycle handler and the payment webhook handler, which may
// race on webhook replays: the per-type existence check plus the unique
// index on (order_id, type) keep the accrual idempotent.
//
// A zero stored fee means the order predates fee computation; fallbackFee
// substitutes for it.
func accrueEarnings(
	ctx context.Context,
	uow SettlementUoW,
	aggregate *order.Order,
	fallbackFee float64,
) error {
	fee := aggregate.DeliveryFee()
	if fee == 0 {
		fee = fallbackFee
	}

	if courierID := aggregate.Courier(); courierID != nil && fee > 0 {
		if err := accrueCourierFee(ctx, uow, aggregate, *courierID, fee); err != nil {
			return err
		}
	}

	merchantID := aggregate.Merchant()
	if merchantID == nil {
		return nil
	}

	saleAmount := aggregate.TotalAmount() - fee
	if saleAmount <= 0 {
		return nil
	}

	return accrueMerchantSale(ctx, uow, aggregate, *merchantID, saleAmount)
}

func accrueCourierFee(
	ctx context.Context,
	uow SettlementUoW,
	aggregate *order.Order,
	courierID kernel.UUID,
	fee float64,
) error {
	exists, err := uow.EarningRepository().ExistsForOrder(ctx, aggregate.ID(), earning.DeliveryFee)
	if err != nil || exists {
		return err
	}

	record, err := earning.NewEarning(
		kernel.NewUUID(), aggregate.ID(), courierID, earning.DeliveryFee, fee)
	if err != nil {
		return err
	}
	if err = uow.EarningRepository().Add(ctx, record); err != nil {
		return err
	}

	assignee, err := uow.CourierRepository().Get(ctx, courierID)
	if err != nil {
		return err
	}
	if err = assignee.CreditBalance(fee); err != nil {
		return err
	}

	return uow.CourierRepository().Update(ctx, assignee)
}

func accrueMerchantSale(
	ctx context.Context,
	uow SettlementUoW,
	aggregate *order.Order,
	merchantID kernel.UUID,
	amount float64,
) error {
	exists, err := uow.EarningRepository().ExistsForOrder(ctx, aggregate.ID(), earning.ProductSale)
	if err != nil || exists {
		return err
	}

	record, err := earning.NewEarning(
		kernel.NewUUID(), aggregate.ID(), merchantID, earning.ProductSale, amount)
	if err != nil {
		return err
	}
	if err = uow.EarningRepository().Add(ctx, record); err != nil {
		return err
	}

	seller, err := uow.MerchantRepository().Get(ctx, merchantID)
	if err != nil {
		return err
	}
	if err = seller.CreditBalance(amount); err != nil {
		return err
	}

	return uow.MerchantRepository().Update(ctx, seller)
}
