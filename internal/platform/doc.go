// Package platform brings up the device's storage, network, clock and
// entropy stack in a fixed order, then keeps two background duties: the
// operational-hours counter and translation of driver Wi-Fi notifications
// into application events.
//
// Bring-up is fail-fast. The first failing step ends InitStack and its
// error is returned; steps that already ran are not undone and the caller
// is expected to restart the process. Shutdown is available for a
// best-effort cleanup.
//
//	mgr := platform.NewManager(opts)
//	if err := mgr.InitStack(ctx); err != nil {
//	    return err
//	}
//	defer mgr.Shutdown(context.Background())
package platform
