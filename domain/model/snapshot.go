package model

// Snapshot is the complete, immutable set of entities available for one
// run of all reports. Lookup maps are built once at construction; the
// snapshot is never mutated afterwards, so it is safe for concurrent
// report computation.
type Snapshot struct {
	Customers  []Customer
	Employees  []Employee
	Suppliers  []Supplier
	Categories []Category
	Shippers   []Shipper
	Products   []Product
	Orders     []Order
	Lines      []OrderLine

	customerByID map[int]Customer
	employeeByID map[int]Employee
	supplierByID map[int]Supplier
	categoryByID map[int]Category
	shipperByID  map[int]Shipper
	productByID  map[int]Product
	orderByID    map[int]Order
}

// NewSnapshot builds a snapshot with lookup indexes over the given
// entities. The slices are kept as-is; callers must not mutate them after
// construction.
func NewSnapshot(
	customers []Customer,
	employees []Employee,
	suppliers []Supplier,
	categories []Category,
	shippers []Shipper,
	products []Product,
	orders []Order,
	lines []OrderLine,
) *Snapshot {
	s := &Snapshot{
		Customers:  customers,
		Employees:  employees,
		Suppliers:  suppliers,
		Categories: categories,
		Shippers:   shippers,
		Products:   products,
		Orders:     orders,
		Lines:      lines,

		customerByID: make(map[int]Customer, len(customers)),
		employeeByID: make(map[int]Employee, len(employees)),
		supplierByID: make(map[int]Supplier, len(suppliers)),
		categoryByID: make(map[int]Category, len(categories)),
		shipperByID:  make(map[int]Shipper, len(shippers)),
		productByID:  make(map[int]Product, len(products)),
		orderByID:    make(map[int]Order, len(orders)),
	}

	for _, c := range customers {
		s.customerByID[c.ID] = c
	}
	for _, e := range employees {
		s.employeeByID[e.ID] = e
	}
	for _, sp := range suppliers {
		s.supplierByID[sp.ID] = sp
	}
	for _, c := range categories {
		s.categoryByID[c.ID] = c
	}
	for _, sh := range shippers {
		s.shipperByID[sh.ID] = sh
	}
	for _, p := range products {
		s.productByID[p.ID] = p
	}
	for _, o := range orders {
		s.orderByID[o.ID] = o
	}

	return s
}

// CustomerByID looks up a customer.
func (s *Snapshot) CustomerByID(id int) (Customer, bool) {
	c, ok := s.customerByID[id]
	return c, ok
}

// EmployeeByID looks up an employee.
func (s *Snapshot) EmployeeByID(id int) (Employee, bool) {
	e, ok := s.employeeByID[id]
	return e, ok
}

// SupplierByID looks up a supplier.
func (s *Snapshot) SupplierByID(id int) (Supplier, bool) {
	sp, ok := s.supplierByID[id]
	return sp, ok
}

// CategoryByID looks up a category.
func (s *Snapshot) CategoryByID(id int) (Category, bool) {
	c, ok := s.categoryByID[id]
	return c, ok
}

// ShipperByID looks up a shipper.
func (s *Snapshot) ShipperByID(id int) (Shipper, bool) {
	sh, ok := s.shipperByID[id]
	return sh, ok
}

// ProductByID looks up a product.
func (s *Snapshot) ProductByID(id int) (Product, bool) {
	p, ok := s.productByID[id]
	return p, ok
}

// OrderByID looks up an order.
func (s *Snapshot) OrderByID(id int) (Order, bool) {
	o, ok := s.orderByID[id]
	return o, ok
}
