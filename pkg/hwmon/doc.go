// SPDX-License-Identifier: BSD-3-Clause

// Package hwmon provides minimal access to the Linux hardware-monitoring
// sysfs tree. The boiler sensor's kernel driver (an iio/hwmon bridge on the
// production board) exposes the probe as a standard tempN_input attribute in
// millidegrees; this package reads those attributes and locates devices by
// their stable name rather than the boot-dependent hwmonN index.
package hwmon
