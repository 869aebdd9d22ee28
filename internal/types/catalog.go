package types

// catalogEntry describes a JDK class. Supertypes are type text over the
// entry's own parameters; a parameter may carry a bound as "E extends X".
type catalogEntry struct {
	kind     ClassKind
	outer    string
	params   []string
	super    string
	ifaces   []string
	abstract bool
	final    bool
}

func cls(super string, ifaces ...string) *catalogEntry {
	return &catalogEntry{kind: ClassKindClass, super: super, ifaces: ifaces}
}

func finalCls(super string, ifaces ...string) *catalogEntry {
	e := cls(super, ifaces...)
	e.final = true
	return e
}

func abstractCls(params []string, super string, ifaces ...string) *catalogEntry {
	return &catalogEntry{kind: ClassKindClass, params: params, super: super, ifaces: ifaces, abstract: true}
}

func generic(params []string, super string, ifaces ...string) *catalogEntry {
	return &catalogEntry{kind: ClassKindClass, params: params, super: super, ifaces: ifaces}
}

func iface(params []string, ifaces ...string) *catalogEntry {
	return &catalogEntry{kind: ClassKindInterface, params: params, ifaces: ifaces}
}

func annotation() *catalogEntry {
	return &catalogEntry{kind: ClassKindAnnotation, ifaces: []string{"java.lang.annotation.Annotation"}}
}

func enum(name string) *catalogEntry {
	return &catalogEntry{kind: ClassKindEnum, super: "java.lang.Enum<" + name + ">", final: true}
}

func nested(outer string, e *catalogEntry) *catalogEntry {
	e.outer = outer
	return e
}

func params(names ...string) []string { return names }

const (
	serializable = "java.io.Serializable"
	cloneable    = "java.lang.Cloneable"
)

// jdkCatalog is the table of JDK classes known without a classpath.
var jdkCatalog = map[string]*catalogEntry{
	// === java.lang ===
	"java.lang.Object":        cls(""),
	"java.lang.String":        finalCls("", serializable, "java.lang.Comparable<java.lang.String>", "java.lang.CharSequence"),
	"java.lang.Number":        abstractCls(nil, "", serializable),
	"java.lang.Boolean":       finalCls("", serializable, "java.lang.Comparable<java.lang.Boolean>"),
	"java.lang.Byte":          finalCls("java.lang.Number", "java.lang.Comparable<java.lang.Byte>"),
	"java.lang.Short":         finalCls("java.lang.Number", "java.lang.Comparable<java.lang.Short>"),
	"java.lang.Integer":       finalCls("java.lang.Number", "java.lang.Comparable<java.lang.Integer>"),
	"java.lang.Long":          finalCls("java.lang.Number", "java.lang.Comparable<java.lang.Long>"),
	"java.lang.Float":         finalCls("java.lang.Number", "java.lang.Comparable<java.lang.Float>"),
	"java.lang.Double":        finalCls("java.lang.Number", "java.lang.Comparable<java.lang.Double>"),
	"java.lang.Character":     finalCls("", serializable, "java.lang.Comparable<java.lang.Character>"),
	"java.lang.Void":          finalCls(""),
	"java.lang.Math":          finalCls(""),
	"java.lang.System":        finalCls(""),
	"java.lang.Class":         &catalogEntry{kind: ClassKindClass, params: params("T"), ifaces: []string{serializable}, final: true},
	"java.lang.Thread":        cls("", "java.lang.Runnable"),
	"java.lang.Thread.State":  nested("java.lang.Thread", enum("java.lang.Thread.State")),
	"java.lang.StringBuilder": finalCls("", serializable, "java.lang.CharSequence"),
	"java.lang.StringBuffer":  finalCls("", serializable, "java.lang.CharSequence"),
	"java.lang.Enum":          abstractCls(params("E extends java.lang.Enum<E>"), "", "java.lang.Comparable<E>", serializable),
	"java.lang.Iterable":      iface(params("T")),
	"java.lang.Comparable":    iface(params("T")),
	"java.lang.CharSequence":  iface(nil),
	"java.lang.Runnable":      iface(nil),
	"java.lang.AutoCloseable": iface(nil),
	"java.lang.Cloneable":     iface(nil),
	"java.lang.Appendable":    iface(nil),

	"java.lang.Throwable":                     cls("", serializable),
	"java.lang.Exception":                     cls("java.lang.Throwable"),
	"java.lang.Error":                         cls("java.lang.Throwable"),
	"java.lang.RuntimeException":              cls("java.lang.Exception"),
	"java.lang.NullPointerException":          cls("java.lang.RuntimeException"),
	"java.lang.IllegalArgumentException":      cls("java.lang.RuntimeException"),
	"java.lang.IllegalStateException":         cls("java.lang.RuntimeException"),
	"java.lang.IndexOutOfBoundsException":     cls("java.lang.RuntimeException"),
	"java.lang.UnsupportedOperationException": cls("java.lang.RuntimeException"),
	"java.lang.ClassCastException":            cls("java.lang.RuntimeException"),
	"java.lang.NumberFormatException":         cls("java.lang.IllegalArgumentException"),
	"java.lang.CloneNotSupportedException":    cls("java.lang.Exception"),
	"java.lang.InterruptedException":          cls("java.lang.Exception"),

	"java.lang.Override":            annotation(),
	"java.lang.Deprecated":          annotation(),
	"java.lang.SuppressWarnings":    annotation(),
	"java.lang.SafeVarargs":         annotation(),
	"java.lang.FunctionalInterface": annotation(),

	// === java.lang.annotation ===
	"java.lang.annotation.Annotation":      iface(nil),
	"java.lang.annotation.Retention":       annotation(),
	"java.lang.annotation.Target":          annotation(),
	"java.lang.annotation.Documented":      annotation(),
	"java.lang.annotation.Inherited":       annotation(),
	"java.lang.annotation.Repeatable":      annotation(),
	"java.lang.annotation.RetentionPolicy": enum("java.lang.annotation.RetentionPolicy"),
	"java.lang.annotation.ElementType":     enum("java.lang.annotation.ElementType"),

	// === java.io ===
	"java.io.Serializable":         iface(nil),
	"java.io.Closeable":            iface(nil, "java.lang.AutoCloseable"),
	"java.io.Flushable":            iface(nil),
	"java.io.IOException":          cls("java.lang.Exception"),
	"java.io.UncheckedIOException": cls("java.lang.RuntimeException"),
	"java.io.InputStream":          abstractCls(nil, "", "java.io.Closeable"),
	"java.io.OutputStream":         abstractCls(nil, "", "java.io.Closeable", "java.io.Flushable"),
	"java.io.File":                 cls("", serializable, "java.lang.Comparable<java.io.File>"),

	// === java.util ===
	"java.util.Iterator":             iface(params("E")),
	"java.util.Collection":           iface(params("E"), "java.lang.Iterable<E>"),
	"java.util.List":                 iface(params("E"), "java.util.Collection<E>"),
	"java.util.Set":                  iface(params("E"), "java.util.Collection<E>"),
	"java.util.SortedSet":            iface(params("E"), "java.util.Set<E>"),
	"java.util.Queue":                iface(params("E"), "java.util.Collection<E>"),
	"java.util.Deque":                iface(params("E"), "java.util.Queue<E>"),
	"java.util.RandomAccess":         iface(nil),
	"java.util.Comparator":           iface(params("T")),
	"java.util.AbstractCollection":   abstractCls(params("E"), "", "java.util.Collection<E>"),
	"java.util.AbstractList":         abstractCls(params("E"), "java.util.AbstractCollection<E>", "java.util.List<E>"),
	"java.util.AbstractSet":          abstractCls(params("E"), "java.util.AbstractCollection<E>", "java.util.Set<E>"),
	"java.util.ArrayList":            generic(params("E"), "java.util.AbstractList<E>", "java.util.List<E>", "java.util.RandomAccess", cloneable, serializable),
	"java.util.LinkedList":           generic(params("E"), "java.util.AbstractList<E>", "java.util.List<E>", "java.util.Deque<E>", cloneable, serializable),
	"java.util.HashSet":              generic(params("E"), "java.util.AbstractSet<E>", "java.util.Set<E>", cloneable, serializable),
	"java.util.LinkedHashSet":        generic(params("E"), "java.util.HashSet<E>", "java.util.Set<E>", cloneable, serializable),
	"java.util.TreeSet":              generic(params("E"), "java.util.AbstractSet<E>", "java.util.SortedSet<E>", cloneable, serializable),
	"java.util.Map":                  iface(params("K", "V")),
	"java.util.Map.Entry":            nested("java.util.Map", iface(params("K", "V"))),
	"java.util.SortedMap":            iface(params("K", "V"), "java.util.Map<K,V>"),
	"java.util.AbstractMap":          abstractCls(params("K", "V"), "", "java.util.Map<K,V>"),
	"java.util.HashMap":              generic(params("K", "V"), "java.util.AbstractMap<K,V>", "java.util.Map<K,V>", cloneable, serializable),
	"java.util.LinkedHashMap":        generic(params("K", "V"), "java.util.HashMap<K,V>", "java.util.Map<K,V>"),
	"java.util.TreeMap":              generic(params("K", "V"), "java.util.AbstractMap<K,V>", "java.util.SortedMap<K,V>", cloneable, serializable),
	"java.util.Optional":             &catalogEntry{kind: ClassKindClass, params: params("T"), final: true},
	"java.util.Objects":              finalCls(""),
	"java.util.Arrays":               cls(""),
	"java.util.Collections":          cls(""),
	"java.util.UUID":                 finalCls("", serializable, "java.lang.Comparable<java.util.UUID>"),
	"java.util.Date":                 cls("", serializable, cloneable, "java.lang.Comparable<java.util.Date>"),
	"java.util.Locale":               finalCls("", cloneable, serializable),

	"java.util.NoSuchElementException":         cls("java.lang.RuntimeException"),
	"java.util.ConcurrentModificationException": cls("java.lang.RuntimeException"),

	// === java.util.function ===
	"java.util.function.Function":   iface(params("T", "R")),
	"java.util.function.BiFunction": iface(params("T", "U", "R")),
	"java.util.function.Supplier":   iface(params("T")),
	"java.util.function.Consumer":   iface(params("T")),
	"java.util.function.BiConsumer": iface(params("T", "U")),
	"java.util.function.Predicate":  iface(params("T")),

	// === java.time ===
	"java.time.Instant":       finalCls("", serializable, "java.lang.Comparable<java.time.Instant>"),
	"java.time.LocalDate":     finalCls("", serializable),
	"java.time.LocalDateTime": finalCls("", serializable),
	"java.time.Duration":      finalCls("", serializable, "java.lang.Comparable<java.time.Duration>"),

	// === java.math ===
	"java.math.BigDecimal": cls("java.lang.Number", "java.lang.Comparable<java.math.BigDecimal>"),
	"java.math.BigInteger": cls("java.lang.Number", "java.lang.Comparable<java.math.BigInteger>"),
}
