package validate

import (
	"context"
	"errors"
	"testing"

	"tienda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id  int64
	key string
}

// fakeStore keeps keys per entity/field and ids per entity.
type fakeStore struct {
	keys map[string][]row
	ids  map[domain.Entity][]int64
	err  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{keys: map[string][]row{}, ids: map[domain.Entity][]int64{}}
}

func (s *fakeStore) put(entity domain.Entity, field string, id int64, key string) {
	k := string(entity) + "." + field
	s.keys[k] = append(s.keys[k], row{id: id, key: key})
	s.ids[entity] = append(s.ids[entity], id)
}

func (s *fakeStore) Exists(_ context.Context, entity domain.Entity, field, key string, exceptID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, r := range s.keys[string(entity)+"."+field] {
		if r.key == key && r.id != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Resolves(_ context.Context, entity domain.Entity, id int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, x := range s.ids[entity] {
		if x == id {
			return true, nil
		}
	}
	return false, nil
}

func productInput(name, price, stock string) map[string]string {
	return map[string]string{"name": name, "price": price, "stock": stock, "brand_id": "1", "type_id": "2", "unit_id": "3"}
}

func catalogStore() *fakeStore {
	s := newFakeStore()
	s.put(domain.EntityBrand, "name", 1, "lala")
	s.put(domain.EntityProductType, "name", 2, "lacteos")
	s.put(domain.EntityUnit, "name", 3, "litro")
	return s
}

func TestNormalizeDigits(t *testing.T) {
	cases := []struct {
		in, want, msg string
	}{
		{"100", "100", ""},
		{" 42 ", "42", ""},
		{"12.0", "12", ""},
		{"12.00", "12", ""},
		{"12.5", "", MsgDecimals},
		{"-1", "", MsgDigits},
		{"+7", "", MsgDigits},
		{"4.500", "", MsgThousands},
		{"1.000.000", "", MsgThousands},
		{"1,000", "", MsgThousands},
		{"12a", "", MsgDigits},
		{"12.", "", MsgDigits},
		{"", "", MsgDigits},
	}
	for _, tc := range cases {
		got, msg := NormalizeDigits(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, tc.msg, msg, "input %q", tc.in)
	}
}

func TestProductPriceBounds(t *testing.T) {
	s := catalogStore()
	for price, ok := range map[string]bool{"0": false, "1": true, "999999": true, "1000000": false, "-5": false} {
		res := Check(context.Background(), s, ProductSchema, productInput("Leche Entera", price, "10"), 0)
		assert.Equal(t, ok, !res.Errors.Has("price"), "price %q", price)
	}

	res := Check(context.Background(), s, ProductSchema, productInput("Leche Entera", "1000000", "10"), 0)
	assert.Equal(t, "Enter a value between 1 and 999,999.", res.Errors.First("price"))
	res = Check(context.Background(), s, ProductSchema, productInput("Leche Entera", "4500", "1000001"), 0)
	assert.Equal(t, "Enter a value between 0 and 1,000,000.", res.Errors.First("stock"))
}

func TestProductStockRules(t *testing.T) {
	s := catalogStore()
	cases := map[string]bool{"12.0": true, "12.5": false, "-1": false, "1000001": false, "1000000": true, "0": true}
	for stock, ok := range cases {
		res := Check(context.Background(), s, ProductSchema, productInput("Leche Entera", "4500", stock), 0)
		assert.Equal(t, ok, res.OK(), "stock %q: %v", stock, res.Errors)
	}

	res := Check(context.Background(), s, ProductSchema, productInput("Leche Entera", "4500", "12.0"), 0)
	require.True(t, res.OK())
	assert.Equal(t, 12, res.Int("stock"))
	assert.Equal(t, int64(3), res.ID("unit_id"))
}

func TestUniqueNameIgnoresCaseAndExcludesSelf(t *testing.T) {
	s := catalogStore()
	s.put(domain.EntityProduct, "name", 9, domain.NameKey("Leche Entera"))

	res := Check(context.Background(), s, ProductSchema, productInput("leche  ENTERA", "4500", "100"), 0)
	require.Error(t, res.Err())
	assert.Contains(t, res.Errors.First("name"), "leche ENTERA")

	var ce *domain.ConflictError
	require.True(t, errors.As(res.Err(), &ce))
	assert.Equal(t, domain.EntityProduct, ce.Entity)

	res = Check(context.Background(), s, ProductSchema, productInput("Leche Entera", "4500", "100"), 9)
	assert.NoError(t, res.Err())
}

func TestCollectsEveryFieldFailure(t *testing.T) {
	res := Check(context.Background(), newFakeStore(), ClientSchema, map[string]string{
		"name":     "Juan 3",
		"document": "12",
		"phone":    "300123",
		"email":    "nope",
		"address":  " ",
	}, 0)

	var ve *domain.ValidationError
	require.True(t, errors.As(res.Err(), &ve))
	for _, f := range []string{"name", "document", "phone", "email", "address"} {
		assert.True(t, ve.Fields.Has(f), "missing error for %s", f)
		assert.Len(t, ve.Fields[f], 1, "rules of one field stop at the first failure")
	}
	assert.Equal(t, MsgRequired, ve.Fields.First("address"))
	assert.Equal(t, MsgLetters, ve.Fields.First("name"))
	assert.False(t, ve.Fields.Has("status"))
}

func TestClientCanonicalValues(t *testing.T) {
	res := Check(context.Background(), newFakeStore(), ClientSchema, map[string]string{
		"name":     "  María   Pérez ",
		"document": "1234567",
		"phone":    "3001234567",
		"email":    " Maria@Correo.COM ",
		"address":  "Calle 123 #45-67",
	}, 0)
	require.NoError(t, res.Err())
	assert.Equal(t, "María Pérez", res.String("name"))
	assert.Equal(t, "maria@correo.com", res.String("email"))
	assert.Equal(t, domain.ClientActive, res.String("status"))
}

func TestClientEditKeepsOwnDocument(t *testing.T) {
	s := newFakeStore()
	s.put(domain.EntityClient, "document", 4, "1234567")
	in := map[string]string{"name": "Ana", "document": " 1234567 ", "phone": "3001234567", "email": "ana@correo.com", "address": "Cra 1"}

	assert.NoError(t, Check(context.Background(), s, ClientSchema, in, 4).Err())
	res := Check(context.Background(), s, ClientSchema, in, 0)
	assert.True(t, res.Errors.Has("document"))
}

func TestRefMustResolve(t *testing.T) {
	s := catalogStore()
	in := productInput("Arroz Diana", "2500", "4")
	in["brand_id"] = "77"
	in["type_id"] = ""
	in["unit_id"] = "abc"

	res := Check(context.Background(), s, ProductSchema, in, 0)
	assert.Contains(t, res.Errors.First("brand_id"), "does not exist")
	assert.Equal(t, MsgRequired, res.Errors.First("type_id"))
	assert.Equal(t, MsgChoice, res.Errors.First("unit_id"))
}

func TestPasswordConfirmation(t *testing.T) {
	in := map[string]string{
		"name": "Laura Gómez", "username": "laura", "email": "laura@tienda.co",
		"password": "Secreta#2024", "password_confirm": "Secreta#2025",
	}
	res := Check(context.Background(), newFakeStore(), AdministratorSchema, in, 0)
	assert.Equal(t, "Passwords do not match.", res.Errors.First("password_confirm"))

	in["password_confirm"] = in["password"]
	assert.NoError(t, Check(context.Background(), newFakeStore(), AdministratorSchema, in, 0).Err())

	in["password"], in["password_confirm"] = "short", "short"
	assert.Equal(t, MsgWeakSecret, Check(context.Background(), newFakeStore(), AdministratorSchema, in, 0).Errors.First("password"))
}

func TestUnitAbbreviationDefault(t *testing.T) {
	res := Check(context.Background(), newFakeStore(), UnitSchema, map[string]string{"name": "Kilogramo"}, 0)
	require.NoError(t, res.Err())
	assert.Equal(t, domain.DefaultUnitAbbreviation, res.String("abbreviation"))
}

func TestStoreFaultIsNotAValidationError(t *testing.T) {
	s := newFakeStore()
	s.err = errors.New("database is locked")
	res := Check(context.Background(), s, BrandSchema, map[string]string{"name": "Alpina"}, 0)

	err := res.Err()
	require.Error(t, err)
	var ve *domain.ValidationError
	assert.False(t, errors.As(err, &ve))
	assert.ErrorIs(t, err, s.err)
}

func TestCheckLines(t *testing.T) {
	res := Check(context.Background(), nil, SaleSchema, map[string]string{"client": "Pedro"}, 0)
	CheckLines(context.Background(), nil, &res, SaleItemSchema, nil)
	assert.Equal(t, MsgNoItems, res.Errors.First("items"))

	res = Check(context.Background(), nil, SaleSchema, map[string]string{"client": "Pedro", "total": "abc"}, 0)
	lines := CheckLines(context.Background(), nil, &res, SaleItemSchema, []map[string]string{
		{"name": "Arroz", "quantity": "2", "price": "2500"},
		{"name": "Leche", "quantity": "0", "price": "4500"},
	})
	require.Len(t, lines, 2)
	assert.True(t, res.Errors.Has("items.1.quantity"))
	assert.False(t, res.Errors.Has("items.0.quantity"))
	assert.Equal(t, MsgAmount, res.Errors.First("total"))
	assert.Equal(t, domain.SalePending, res.String("status"))
}

func TestQ(t *testing.T) {
	q, ok := Q("  leche ")
	assert.True(t, ok)
	assert.Equal(t, "leche", q)
	_, ok = Q("<script>")
	assert.False(t, ok)
}
