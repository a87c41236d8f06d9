package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"baro/event"
	"baro/hotkey"
	"baro/iconcache"
	"baro/instance"
	"baro/ipc"
	"baro/launch"
	"baro/links"
	"baro/log"
	"baro/session"
	"baro/shutdown"
	"baro/tray"
	"baro/window"
)

func runDaemon(ctx context.Context, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	setupLogging(opts.logPath)
	defer log.Close()

	lock, err := instance.Acquire(cfg.PidFile)
	if errors.Is(err, instance.ErrRunning) {
		log.Info("already running, asking it to show")
		if sendErr := sendToDaemon(cfg.IPC.SocketPath, ipc.MsgShow); sendErr != nil {
			return fmt.Errorf("%w but not answering: %v", err, sendErr)
		}
		fmt.Fprintln(os.Stderr, "baro is already running")
		return nil
	}
	if err != nil {
		log.Errorf("pid file: %v", err)
		return err
	}
	defer lock.Release()

	mod, err := cfg.Gesture.Key()
	if err != nil {
		return err
	}

	c, repaired, err := links.LoadOrRepair(cfg.Links.Path)
	if err != nil {
		log.Errorf("links: %v", err)
		return err
	}
	deps := iconcache.New()
	icons, err := iconcache.NewStore(cfg.Icons.CacheSize, cfg.Icons.Fallback)
	if err != nil {
		return err
	}
	store := links.NewStore(c, deps, links.FileStore{}, cfg.Links.Path)
	store.SetWontSave(repaired)

	listener := hotkey.New(mod)
	if err := listener.Register(); err != nil {
		log.Errorf("key listener: %v", err)
		return fmt.Errorf("key listener: %w", err)
	}
	defer listener.Unregister()

	detector := hotkey.NewDoubleTap(mod, cfg.Gesture.Window())
	detector.SetEnabled(cfg.Gesture.Enabled)

	sess := session.New(store, deps, icons, launch.Exec{Terminal: cfg.Window.Terminal}, cfg.Window.Columns)
	fe, err := newFrontend(opts.surface, sess, cfg)
	if err != nil {
		return err
	}

	flag := &window.SummonFlag{}
	ctrl := window.NewController(fe, flag)
	sess.Attach(ctrl, flag)

	proxy := event.NewProxy(64)
	defer proxy.Close()

	ctrl.OnToggleGesture(func(on bool) {
		detector.SetEnabled(on)
		tray.SetGesture(on)
		log.Infof("gesture_enabled: %v", on)
	})
	tray.SetGesture(detector.Enabled())
	// Tray callbacks run on the UI goroutine.
	tray.OnShow(func() { proxy.TryPost(event.TrayClick()) })
	tray.OnGesture(func(on bool) { proxy.TryPost(event.ToggleGesture(on, "tray")) })
	if repaired {
		tray.SetError("links file repaired, changes are not saved")
	}

	ctx, stop := shutdown.Context(ctx)
	defer stop()

	go func() {
		select {
		case <-tray.Done():
			proxy.Post(event.Quit("tray"))
		case <-ctx.Done():
		}
	}()

	server := ipc.NewServer(cfg.IPC.SocketPath, proxy)
	if err := server.Start(); err != nil {
		log.Warnf("ipc: %v", err)
	} else {
		defer server.Close()
	}

	go detector.Run(ctx, listener, func() { proxy.Post(event.Summon("gesture")) })

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- window.NewLoop(proxy, ctrl, fe.Do).Run(ctx)
		fe.Quit()
	}()

	log.SessionStart(version, fe.Name(), mod.String(), detector.Enabled(), store.Len())
	runErr := fe.Run(ctx)
	stop()
	fe.Quit()
	proxy.Close()
	loopErr := <-loopDone
	log.SessionEnd(sess.Launches())

	if runErr != nil {
		log.Errorf("%s surface: %v", fe.Name(), runErr)
		return runErr
	}
	if loopErr != nil && !errors.Is(loopErr, context.Canceled) && !errors.Is(loopErr, event.ErrClosed) {
		return loopErr
	}
	return nil
}
