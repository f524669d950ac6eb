package vehicle

type Category string

const (
	CategoryCar  Category = "car"
	CategoryBike Category = "bike"
	CategoryVan  Category = "van"
	CategorySUV  Category = "suv"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryCar, CategoryBike, CategoryVan, CategorySUV:
		return true
	default:
		return false
	}
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

type Availability string

const (
	Available Availability = "available"
	Booked    Availability = "booked"
)

func (a Availability) String() string {
	return string(a)
}

func (a Availability) IsValid() bool {
	switch a {
	case Available, Booked:
		return true
	default:
		return false
	}
}

func NewAvailability(s string) (Availability, error) {
	a := Availability(s)
	if !a.IsValid() {
		return "", ErrInvalidAvailability
	}
	return a, nil
}
