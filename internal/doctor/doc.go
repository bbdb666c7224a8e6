// Package doctor checks that the toolchains orgbuild shells out to are
// installed and recent enough.
package doctor
