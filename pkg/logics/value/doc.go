/*
Package value implements the dynamically typed values of the Logics
expression language.

# Overview

A Value is an immutable tagged union with seven variants:

	None     absence of a value
	bool     True / False
	int      integral numbers
	float    non-integral numbers
	str      text
	list     ordered sequence of values
	dict     ordered, string-keyed map of values

Numbers are classified when they are constructed: Number(3.0) is an int,
Number(3.5) is a float.

# Construction

Build values directly or convert native Go data:

	v := value.List(value.Int(1), value.String("a"))

	v, err := value.New(map[string]any{"price": 9.5, "tags": []any{"x"}})
	if err != nil {
	    // err is a *value.ConversionError naming the offending element
	}

Conversion of composite data is all-or-nothing.

# Coercion

Every value converts to every scalar form without failing:

	value.String(" 123 xix").Int()       // 123
	value.String(" -123.4 xfx").Float()  // -123.4
	value.String("abc").Int()            // 0
	value.None().String()                // "None"

ParseInt and ParseFloat expose the underlying fallible parse.

# Operators

Compare implements a single three-way comparison from which every relational
operator is derived. Add, Sub, Mul, Div, FloorDiv, Mod, Pow, Pos, Neg, Invert
and Not implement the arithmetic operators with scripting-language promotion
rules: strings win over floats, floats win over integers.

	value.Add(value.Int(1), value.String("2")).Repr()   // "12"
	value.Mul(value.String("ab"), value.Int(3)).Repr()  // "ababab"
	value.Div(value.Int(7), value.Int(2)).Repr()        // 3.5

# Serialization

Repr returns the canonical display form used by tests. Values also implement
json.Marshaler, json.Unmarshaler, yaml.Marshaler and yaml.Unmarshaler, all of
which keep dict keys in order.
*/
package value
