package codemodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"jcodemodel/internal/types"
)

func TestAnonymousClass(t *testing.T) {
	m := NewModel()
	b := m.Types().Builtins()
	cls, err := m.Class("com.acme.Tasks", types.ClassKindClass)
	require.NoError(t, err)
	task, err := cls.Method(ModPublic, m.MustRef("java.lang.Runnable"), "task")
	require.NoError(t, err)

	anon := m.AnonymousClass(m.MustRef("java.lang.Runnable"))
	require.True(t, anon.IsAnonymous())
	run, err := anon.Method(ModPublic, b.Void, "run")
	require.NoError(t, err)
	run.Body().Direct(`System.out.println("tick");`)
	task.Body().Return(NewAnonymous(anon))

	want := `package com.acme;

public class Tasks {
    public Runnable task() {
        return new Runnable() {
            public void run() {
                System.out.println("tick");
            }
        };
    }
}
`
	require.Equal(t, want, write(t, m, cls))

	_, err = anon.Constructor(ModPublic)
	require.ErrorIs(t, err, ErrWrongKind)
	require.ErrorIs(t, anon.Extends(b.Object), ErrWrongKind)
	_, err = anon.Nested(ModNone, "Inner", types.ClassKindClass)
	require.ErrorIs(t, err, ErrWrongKind)
	require.False(t, cls.IsAnonymous())
}

func TestTryWithResources(t *testing.T) {
	m := NewModel()
	b := m.Types().Builtins()
	reader := m.MustRef("java.io.BufferedReader")
	cls, err := m.Class("com.acme.Lines", types.ClassKindClass)
	require.NoError(t, err)
	first, err := cls.Method(ModPublic, b.String, "first")
	require.NoError(t, err)
	path, err := first.Param(ModNone, b.String, "path")
	require.NoError(t, err)

	tb := first.Body().Try()
	in, err := tb.Resource(ModNone, reader, "in", New(reader).Arg(New(m.MustRef("java.io.FileReader")).Arg(path)))
	require.NoError(t, err)
	_, err = tb.Resource(ModNone, reader, "in", Null())
	require.ErrorIs(t, err, ErrDuplicate)
	_, err = tb.Resource(ModNone, reader, "other", nil)
	require.Error(t, err)

	tb.Body().Return(Invoke(in, "readLine"))
	cb, err := tb.Catch("e", m.MustRef("java.io.IOException"), m.MustRef("java.io.UncheckedIOException"))
	require.NoError(t, err)
	cb.Body().Throw(New(m.MustRef("java.lang.IllegalStateException")).Arg(cb.Param()))
	tb.Finally().Invoke(Ident("lock"), "unlock")
	require.Len(t, tb.Catches(), 1)

	want := `package com.acme;

import java.io.BufferedReader;
import java.io.FileReader;
import java.io.IOException;
import java.io.UncheckedIOException;

public class Lines {
    public String first(String path) {
        try (final BufferedReader in = new BufferedReader(new FileReader(path))) {
            return in.readLine();
        } catch (IOException | UncheckedIOException e) {
            throw new IllegalStateException(e);
        } finally {
            lock.unlock();
        }
    }
}
`
	require.Equal(t, want, write(t, m, cls))
}

func TestSwitchStatement(t *testing.T) {
	m := NewModel()
	b := m.Types().Builtins()
	level, err := m.Class("com.acme.model.Level", types.ClassKindEnum)
	require.NoError(t, err)
	low, err := level.EnumConstant("LOW")
	require.NoError(t, err)
	_, err = level.EnumConstant("HIGH")
	require.NoError(t, err)

	cls, err := m.Class("com.acme.Labels", types.ClassKindClass)
	require.NoError(t, err)
	name, err := cls.Method(ModPublic|ModStatic, b.String, "name")
	require.NoError(t, err)
	code, err := name.Param(ModNone, b.Int, "code")
	require.NoError(t, err)
	sw := name.Body().Switch(code)
	sw.Default().Body().Return(Str("many"))
	sw.Case(Lit(1)).Body().Return(Str("one"))
	sw.Case(Lit(2)).Body().Comment("falls through")
	sw.Case(Lit(3)).Body().Return(Str("few"))

	weight, err := cls.Method(ModPublic|ModStatic, b.Int, "weight")
	require.NoError(t, err)
	lv, err := weight.Param(ModNone, level.ID(), "level")
	require.NoError(t, err)
	esw := weight.Body().Switch(lv)
	esw.Case(low).Body().Return(Lit(1))
	esw.Case(EnumRef(level.ID(), "HIGH")).Body().Return(Lit(10))
	weight.Body().Return(Lit(0))

	want := `package com.acme;

import com.acme.model.Level;

public class Labels {
    public static String name(int code) {
        switch (code) {
            case 1:
                return "one";
            case 2:
                // falls through
            case 3:
                return "few";
            default:
                return "many";
        }
    }

    public static int weight(Level level) {
        switch (level) {
            case LOW:
                return 1;
            case HIGH:
                return 10;
        }
        return 0;
    }
}
`
	require.Equal(t, want, write(t, m, cls))
}

func TestDoWhileAndSynchronized(t *testing.T) {
	m := NewModel()
	b := m.Types().Builtins()
	cls, err := m.Class("com.acme.Halver", types.ClassKindClass)
	require.NoError(t, err)
	halve, err := cls.Method(ModPublic, b.Int, "halve")
	require.NoError(t, err)
	n, err := halve.Param(ModNone, b.Int, "n")
	require.NoError(t, err)
	body := halve.Body()
	body.DoWhile(Gt(n, Lit(1))).Body().Assign(n, Div(n, Lit(2)))
	body.Synchronized(Ident("this")).Body().Eval(Incr(n))
	body.Return(n)

	want := `package com.acme;

public class Halver {
    public int halve(int n) {
        do {
            n = (n / 2);
        } while (n > 1);
        synchronized (this) {
            n++;
        }
        return n;
    }
}
`
	require.Equal(t, want, write(t, m, cls))
}
