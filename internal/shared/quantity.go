package shared

import "strconv"

const (
	MinQuantity = 1
	MaxQuantity = 100
)

// Quantity is a bounded line-item count.
type Quantity struct {
	value int
}

func NewQuantity(value int) (Quantity, error) {
	if value < MinQuantity {
		return Quantity{}, Validationf("quantity must be at least %d, got %d", MinQuantity, value)
	}
	if value > MaxQuantity {
		return Quantity{}, Validationf("quantity cannot exceed %d, got %d", MaxQuantity, value)
	}
	return Quantity{value: value}, nil
}

func (q Quantity) Value() int { return q.value }

func (q Quantity) Add(other Quantity) (Quantity, error) {
	sum := q.value + other.value
	if sum > MaxQuantity {
		return Quantity{}, Validationf("total quantity cannot exceed %d, attempted %d", MaxQuantity, sum)
	}
	return Quantity{value: sum}, nil
}

func (q Quantity) String() string { return strconv.Itoa(q.value) }
