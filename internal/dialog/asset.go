package dialog

import (
	"context"

	"github.com/akarpov/savingsbot/internal/format"
	"github.com/akarpov/savingsbot/internal/moneyx"
	"github.com/akarpov/savingsbot/internal/services"
)

func (e *Engine) startAsset(chatID int64) *Outcome {
	e.put(chatID, stateAssetName, &assetDraft{})
	return textOutcome("Let's inventory the empire. What's the asset called?")
}

func (e *Engine) assetName(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*assetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new asset")
	}
	if input == "" {
		return textOutcome("A name, please.")
	}
	d.Name = input
	e.put(chatID, stateAssetAmount, d)
	return textOutcome("How much is in it right now?")
}

func (e *Engine) assetAmount(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*assetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new asset")
	}
	amount, err := moneyx.Parse(input)
	if err != nil {
		return textOutcome(badAmountText)
	}
	d.Amount = amount
	e.put(chatID, stateAssetCurrency, d)
	return textOutcome("Currency?")
}

func (e *Engine) assetCurrency(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*assetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new asset")
	}
	currency, ok := normalizeCurrency(input)
	if !ok {
		return textOutcome("A currency code, please. Three-ish letters, like USD.")
	}
	d.Currency = currency
	e.put(chatID, stateAssetType, d)
	return textOutcome("What kind of asset is it? (cash, savings, stocks, crypto...)")
}

func (e *Engine) assetTypeAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*assetDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "new asset")
	}
	if input == "" {
		return textOutcome("A type, please. 'cash' works.")
	}

	a, err := e.deps.Assets.Upsert(ctx, chatID, d.Name, d.Amount, d.Currency, input)
	if err != nil {
		return e.failTerminal(ctx, chatID, "upsert asset", err)
	}

	e.sessions.Clear(chatID)
	return textOutcome("Asset '" + a.Name + "' is on file: " +
		moneyx.Format(a.Amount) + " " + a.Currency + " (" + a.AssetType + ").")
}

func (e *Engine) startAssetUpdate(ctx context.Context, chatID int64) *Outcome {
	return e.startSelector(ctx, chatID, stateAssetUpdateSelect, e.assetItems,
		"No assets to update. Add one with 'new asset'.")
}

func (e *Engine) assetUpdateSelected(ctx context.Context, chatID int64, ev callbackEvent) *Outcome {
	id, err := ev.itemID64()
	if err != nil {
		return textOutcome(tryAgainText)
	}
	a, err := e.deps.Assets.Get(ctx, id)
	if isNotFound(err) {
		return e.notFound(chatID, "asset")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "load asset", err)
	}

	e.put(chatID, stateAssetUpdateDelta, &assetUpdateDraft{AssetID: a.ID})
	return textOutcome("'" + a.Name + "' sits at " + moneyx.Format(a.Amount) + " " + a.Currency +
		".\nSend the change: +500 to add, -200 to take out.")
}

func (e *Engine) assetDeltaAndSave(ctx context.Context, chatID int64, sess *Session, input string) *Outcome {
	d, ok := sess.Draft.(*assetUpdateDraft)
	if !ok {
		return e.lostContext(ctx, chatID, "update asset")
	}
	delta, err := moneyx.ParseSigned(input)
	if err != nil {
		return textOutcome("Signed number, please: +500 or -200.")
	}

	op := services.DeltaAdd
	magnitude := delta
	if delta < 0 {
		op = services.DeltaSubtract
		magnitude = -delta
	}

	a, err := e.deps.Assets.ApplyDelta(ctx, d.AssetID, magnitude, op)
	if isNotFound(err) {
		return e.notFound(chatID, "asset")
	}
	if err != nil {
		return e.failTerminal(ctx, chatID, "apply asset delta", err)
	}

	e.sessions.Clear(chatID)
	return textOutcome("'" + a.Name + "' now holds " + moneyx.Format(a.Amount) + " " + a.Currency + ".")
}

func (e *Engine) listAssets(ctx context.Context, chatID int64) *Outcome {
	e.sessions.Clear(chatID)
	as, err := e.deps.Assets.List(ctx, chatID)
	if err != nil {
		return e.failTerminal(ctx, chatID, "list assets", err)
	}
	return textOutcome(format.AssetList(as))
}
