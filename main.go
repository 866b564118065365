package main

import (
	"flag"

	"github.com/pkg/errors"

	"github.com/zhukovaskychina/xbtree-engine/conf"
	"github.com/zhukovaskychina/xbtree-engine/engine/basic"
	"github.com/zhukovaskychina/xbtree-engine/engine/node"
	"github.com/zhukovaskychina/xbtree-engine/logger"
	"github.com/zhukovaskychina/xbtree-engine/util"
)

// The engine proper is pure page mechanics; this demo plays the part
// of the tree walker: it owns page numbers, routes through an
// internal page, and drives split/rotate/merge on a small leaf chain.
func main() {
	var configPath string
	flag.StringVar(&configPath, "configPath", "", "path to xbtree.ini")
	flag.Parse()

	config := conf.NewCfg().Load(&conf.CommandLineArgs{ConfigPath: configPath})

	if err := logger.InitLogger(logger.LogConfig{
		ErrorLogPath: config.LogError,
		InfoLogPath:  config.LogInfos,
		LogLevel:     config.LogLevel,
	}); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	logger.Infof("xbtree-engine demo, order=%d, keys=%d", config.TreeOrder, config.DemoKeys)

	if err := runDemo(config); err != nil {
		logger.Fatalf("demo failed: %+v", err)
	}
	logger.Info("demo finished")
}

func runDemo(config *conf.Cfg) error {
	order := config.TreeOrder

	// fill one leaf to capacity
	leaf := node.NewLeaf(order)
	var err error
	for i := 0; i < 2*order; i++ {
		key := util.ConvertULong8BytesBE(uint64(i * 10))
		leaf, err = leaf.Insert(key, []byte("rec"))
		if err != nil {
			return errors.Wrapf(err, "insert %d", i*10)
		}
	}
	logger.Infof("leaf filled: %d keys, %d slots, checksum %016x",
		leaf.KeyCount(), leaf.Size(), leaf.Checksum())

	for i := 0; i < config.DemoKeys && i < 2*order; i++ {
		if _, err := leaf.Find(util.ConvertULong8BytesBE(uint64(i * 10))); err != nil {
			return errors.Wrapf(err, "find %d", i*10)
		}
	}

	// split it the way the walker would: pages 2 and 3, parent on 1
	left, sep, right, err := leaf.Split()
	if err != nil {
		return errors.Wrap(err, "split")
	}
	const leftNo, rightNo = basic.PageNo(2), basic.PageNo(3)
	left = left.SetRightSibling(rightNo)
	logger.Infof("split at %x: left %d slots, right %d slots", sep, left.Size(), right.Size())

	parent := node.NewInternal(order)
	parent, err = parent.InsertChild(sep, leftNo, rightNo)
	if err != nil {
		return errors.Wrap(err, "grow parent")
	}

	// route a few probes through the parent
	for _, probe := range []uint64{0, uint64(order) * 10, uint64(4 * order * 10)} {
		child, err := parent.Child(util.ConvertULong8BytesBE(probe))
		if err != nil {
			return errors.Wrapf(err, "route %d", probe)
		}
		logger.Infof("probe %d routes to page %d", probe, child)
	}
	cs, err := parent.ChildWithSibling(util.ConvertULong8BytesBE(0))
	if err != nil {
		return errors.Wrap(err, "route with sibling")
	}
	logger.Infof("page %d pairs with sibling %d (left=%v)", cs.Child, cs.Sibling, cs.SiblingOnLeft)

	// one rotation right-to-left, then undo the split entirely
	left, newSep, right, err := left.RotateRight(sep, right)
	if err != nil {
		return errors.Wrap(err, "rotate right")
	}
	parent, err = parent.ReplaceKey(sep, newSep)
	if err != nil {
		return errors.Wrap(err, "replace separator")
	}
	logger.Infof("rotated: separator now %x, left %d keys, right %d keys",
		newSep, left.KeyCount(), right.KeyCount())

	merged := left.Merge(newSep, right)
	parent, err = parent.Remove(newSep)
	if err != nil {
		return errors.Wrap(err, "shrink parent")
	}
	logger.Infof("merged back: %d keys, %d slots, checksum %016x, parent keys %d",
		merged.KeyCount(), merged.Size(), merged.Checksum(), parent.KeyCount())

	if _, err := merged.RightSibling(); err != nil {
		logger.Infof("merged leaf is rightmost: %v", err)
	}
	return nil
}
