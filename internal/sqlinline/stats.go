package sqlinline

const QStatsSummary = `--sql 898a2a12-6a25-49de-ad38-540e0206385b
select
  (select count(*) from drives),
  (select count(*) from donations),
  (select coalesce(sum(amount), 0) from donations),
  (select count(*) from donations where date_donated >= now() - interval '24 hours');
`
