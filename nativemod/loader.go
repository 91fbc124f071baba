package nativemod

import (
	"fmt"
	"plugin"
	"strings"
	"sync"

	"github.com/kokoro-js/jieba/types"
)

// AlreadyLoadedMessage is the exact failure text the runtime produces
// when a module with the same identity is opened twice. A load attempt
// failing with precisely this message is treated as success; any other
// failure classifies as ErrLoad.
const AlreadyLoadedMessage = "plugin already loaded"

// SymbolName is the exported symbol every artifact publishes: a value of
// type API (looked up as *API).
const SymbolName = "Jieba"

// Loader loads a native module from its on-disk path.
type Loader interface {
	Load(modulePath string) (*Module, error)
}

// PluginLoader is the production loader backed by the runtime's plugin
// facility. It remembers the first successfully loaded module so a
// tolerated duplicate-load still yields the handle.
type PluginLoader struct {
	mu     sync.Mutex
	loaded *Module
}

// Load opens the module and resolves its function table. The tolerated
// already-loaded condition returns the previously loaded handle.
func (l *PluginLoader) Load(modulePath string) (*Module, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := plugin.Open(modulePath)
	if err != nil {
		if AlreadyLoaded(err) && l.loaded != nil {
			return l.loaded, nil
		}
		return nil, types.NewInstallError(types.ErrLoad, "load", err)
	}

	sym, err := p.Lookup(SymbolName)
	if err != nil {
		return nil, types.NewInstallError(types.ErrLoad, "load", err)
	}
	api, ok := sym.(*API)
	if !ok {
		return nil, types.NewInstallError(types.ErrLoad, "load",
			fmt.Errorf("symbol %s has type %T, want *nativemod.API", SymbolName, sym))
	}
	if err := api.Validate(); err != nil {
		return nil, types.NewInstallError(types.ErrLoad, "load", err)
	}

	l.loaded = &Module{API: *api, Path: modulePath}
	return l.loaded, nil
}

// AlreadyLoaded reports whether err is the tolerated duplicate-load
// condition. The match is text-exact against AlreadyLoadedMessage; the
// runtime prefixes it with the open call, so the bare message and the
// prefixed form both count, but nothing looser does.
func AlreadyLoaded(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return msg == AlreadyLoadedMessage || strings.HasSuffix(msg, ": "+AlreadyLoadedMessage)
}
