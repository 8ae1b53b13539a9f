package cart

import "moms-kitchen/storefront/types"

// Action is a cart mutation understood by Reduce.
type Action interface {
	isAction()
}

// AddItem adds one of Item, appending a line if the item is new.
type AddItem struct{ Item types.MenuItem }

// RemoveItem drops the line for ID.
type RemoveItem struct{ ID uint64 }

// UpdateQuantity sets the quantity of an existing line.
type UpdateQuantity struct {
	ID       uint64
	Quantity int
}

// ClearCart empties the cart.
type ClearCart struct{}

// LoadCart replaces the whole state.
type LoadCart struct{ State State }

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}
func (LoadCart) isAction()       {}

// Reduce applies action to state and returns the resulting state. It never
// modifies state in place. Unavailable items are not added, mutations of
// absent IDs leave the state unchanged, and a quantity of zero or less
// removes the line.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		if !a.Item.Available {
			return state
		}
		lines := state.Lines()
		if i := state.index(a.Item.ID); i >= 0 {
			lines[i].Quantity++
			return State{lines: lines}
		}
		return State{lines: append(lines, Line{Item: a.Item, Quantity: 1})}

	case RemoveItem:
		if state.index(a.ID) < 0 {
			return state
		}
		return state.without(a.ID)

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return Reduce(state, RemoveItem{ID: a.ID})
		}
		i := state.index(a.ID)
		if i < 0 {
			return state
		}
		lines := state.Lines()
		lines[i].Quantity = a.Quantity
		return State{lines: lines}

	case ClearCart:
		return State{}

	case LoadCart:
		return NewState(a.State.lines...)

	default:
		return state
	}
}
