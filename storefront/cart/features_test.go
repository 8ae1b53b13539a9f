package cart

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/cucumber/godog"

	"moms-kitchen/storefront/storage"
	"moms-kitchen/storefront/types"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type cartScenario struct {
	slot   *storage.Memory
	store  *Store
	before State
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	sc := &cartScenario{slot: storage.NewMemory()}

	ctx.Step(`^an empty cart$`, sc.anEmptyCart)
	ctx.Step(`^I add (available|unavailable) item (\d+) priced (\d+)$`, sc.iAddItem)
	ctx.Step(`^I set the quantity of item (\d+) to (-?\d+)$`, sc.iSetQuantity)
	ctx.Step(`^I remove item (\d+)$`, sc.iRemoveItem)
	ctx.Step(`^the application (?:re)?starts$`, sc.theApplicationStarts)
	ctx.Step(`^the stored cart contains:$`, sc.theStoredCartContains)
	ctx.Step(`^the cart has (\d+) lines?$`, sc.theCartHasLines)
	ctx.Step(`^the cart is empty$`, sc.theCartIsEmpty)
	ctx.Step(`^item (\d+) has quantity (\d+)$`, sc.itemHasQuantity)
	ctx.Step(`^the subtotal is (\d+)$`, sc.theSubtotalIs)
	ctx.Step(`^the cart matches the cart from before the restart$`, sc.theCartMatches)
}

func (sc *cartScenario) anEmptyCart() error {
	sc.store = Open(sc.slot, "", nil)
	if !sc.store.State().Empty() {
		return fmt.Errorf("expected empty cart, got %d lines", sc.store.State().Len())
	}
	return nil
}

func (sc *cartScenario) iAddItem(availability, id, price string) error {
	itemID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return err
	}
	cents, err := strconv.ParseUint(price, 10, 64)
	if err != nil {
		return err
	}
	sc.store.AddItem(types.MenuItem{
		ID:        itemID,
		Name:      "Item " + id,
		Available: availability == "available",
		Price:     cents,
	})
	return nil
}

func (sc *cartScenario) iSetQuantity(id string, quantity int) error {
	itemID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return err
	}
	sc.store.UpdateQuantity(itemID, quantity)
	return nil
}

func (sc *cartScenario) iRemoveItem(id string) error {
	itemID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return err
	}
	sc.store.RemoveItem(itemID)
	return nil
}

func (sc *cartScenario) theApplicationStarts() error {
	if sc.store != nil {
		sc.before = sc.store.State()
	}
	sc.store = Open(sc.slot, "", nil)
	return nil
}

func (sc *cartScenario) theStoredCartContains(doc *godog.DocString) error {
	return sc.slot.Set(DefaultStorageKey, doc.Content)
}

func (sc *cartScenario) theCartHasLines(n int) error {
	if got := sc.store.State().Len(); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (sc *cartScenario) theCartIsEmpty() error {
	return sc.theCartHasLines(0)
}

func (sc *cartScenario) itemHasQuantity(id string, quantity int) error {
	itemID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return err
	}
	line, ok := sc.store.State().Line(itemID)
	if !ok {
		return fmt.Errorf("item %s is not in the cart", id)
	}
	if line.Quantity != quantity {
		return fmt.Errorf("expected quantity %d for item %s, got %d", quantity, id, line.Quantity)
	}
	return nil
}

func (sc *cartScenario) theSubtotalIs(cents string) error {
	if got := sc.store.Subtotal().String(); got != cents {
		return fmt.Errorf("expected subtotal %s, got %s", cents, got)
	}
	return nil
}

func (sc *cartScenario) theCartMatches() error {
	if !sc.before.Equal(sc.store.State()) {
		return fmt.Errorf("cart changed across restart: %d lines before, %d after",
			sc.before.Len(), sc.store.State().Len())
	}
	return nil
}
