// Package config ties the configuration pipeline together: definition
// loading, value-store reconciliation, filtered views for presentation, and
// writing current values back out.
//
// # Lifecycle
//
// A Config has two states. It starts uninitialized; a successful
// LoadConfiguration or LoadDefaults moves it to loaded. Accessors that need
// attribute state return ErrNotInitialized before a load.
//
//	cfg, err := config.New()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.LoadConfiguration("canpi-defn.json", "canpi.cfg"); err != nil {
//	    return err
//	}
//
//	// Filtered view for a settings panel
//	editable := cfg.Attributes(attribute.BehaviourEdit)
//
//	// Persist current values, backing up the old file first
//	if err := cfg.Write("canpi.cfg", true); err != nil {
//	    return err
//	}
//
// A Config assumes a single owning caller: no operation is safe for
// concurrent use against the same Config or the same value-store file.
package config
